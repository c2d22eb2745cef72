package cas

import (
	"sort"
	"sync"
)

type MemoryCAS struct {
	mu    sync.RWMutex
	data  map[Hash][]byte
	steps map[Hash][]int // steps at which each hash was recorded
}

func NewMemoryCAS() *MemoryCAS {
	return &MemoryCAS{
		data:  make(map[Hash][]byte),
		steps: make(map[Hash][]int),
	}
}

func (m *MemoryCAS) getValue(h Hash) (bool, []byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[h]
	if !ok {
		return false, nil, nil
	}
	return true, v, nil
}

func (m *MemoryCAS) Has(hash Hash) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[hash]
	return ok
}

func (m *MemoryCAS) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *MemoryCAS) Put(item Hashable) (Hash, error) {
	h, data, err := Encode(item)
	if err != nil {
		return 0, err
	}
	m.putValue(h, data)
	return h, nil
}

func (m *MemoryCAS) putValue(h Hash, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[h] = data
}

func (m *MemoryCAS) RecordStep(h Hash, step int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.steps[h] = append(m.steps[h], step)
	sort.Ints(m.steps[h])
}

// Steps returns every step recorded for h, ascending.
func (m *MemoryCAS) Steps(h Hash) []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	steps := m.steps[h]
	result := make([]int, len(steps))
	copy(result, steps)
	return result
}
