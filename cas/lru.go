package cas

import (
	"container/list"
)

// DefaultCacheSize bounds an LRUCache built with a non-positive size.
const DefaultCacheSize = 1024

// LRUCache keeps the most recently written or read encodings of an
// underlying CAS in memory. Writes go through to the underlying store, so an
// evicted entry is still found there.
type LRUCache struct {
	underlying CAS
	entries    map[Hash]*list.Element
	order      *list.List
	maxSize    int
	hits       int
	misses     int
}

type cacheEntry struct {
	hash Hash
	data []byte
}

func NewLRUCache(underlying CAS, maxSize int) *LRUCache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &LRUCache{
		underlying: underlying,
		entries:    make(map[Hash]*list.Element),
		order:      list.New(),
		maxSize:    maxSize,
	}
}

func (l *LRUCache) Put(item Hashable) (Hash, error) {
	h, data, err := Encode(item)
	if err != nil {
		return 0, err
	}
	if under, ok := l.underlying.(directStore); ok {
		under.putValue(h, data)
	} else if _, err := l.underlying.Put(item); err != nil {
		return 0, err
	}
	l.remember(h, data)
	return h, nil
}

func (l *LRUCache) putValue(h Hash, data []byte) {
	if under, ok := l.underlying.(directStore); ok {
		under.putValue(h, data)
	}
	l.remember(h, data)
}

func (l *LRUCache) remember(h Hash, data []byte) {
	if elem, ok := l.entries[h]; ok {
		elem.Value.(*cacheEntry).data = data
		l.order.MoveToFront(elem)
		return
	}
	l.add(h, data)
}

// Has counts as a hit only when h is answered from memory.
func (l *LRUCache) Has(hash Hash) bool {
	if elem, ok := l.entries[hash]; ok {
		l.hits++
		l.order.MoveToFront(elem)
		return true
	}
	l.misses++
	return l.underlying.Has(hash)
}

func (l *LRUCache) RecordStep(h Hash, step int) {
	l.underlying.RecordStep(h, step)
}

func (l *LRUCache) Steps(h Hash) []int {
	return l.underlying.Steps(h)
}

func (l *LRUCache) getValue(h Hash) (bool, []byte, error) {
	if elem, ok := l.entries[h]; ok {
		l.hits++
		l.order.MoveToFront(elem)
		return true, elem.Value.(*cacheEntry).data, nil
	}
	l.misses++
	underlying, ok := l.underlying.(directStore)
	if !ok {
		return false, nil, nil
	}
	has, data, err := underlying.getValue(h)
	if err != nil || !has {
		return false, nil, err
	}
	l.add(h, data)
	return true, data, nil
}

func (l *LRUCache) add(h Hash, data []byte) {
	l.entries[h] = l.order.PushFront(&cacheEntry{hash: h, data: data})
	for l.order.Len() > l.maxSize {
		oldest := l.order.Back()
		l.order.Remove(oldest)
		delete(l.entries, oldest.Value.(*cacheEntry).hash)
	}
}

type CacheStats struct {
	Size    int
	MaxSize int
	Hits    int
	Misses  int
}

func (l *LRUCache) Stats() CacheStats {
	return CacheStats{
		Size:    len(l.entries),
		MaxSize: l.maxSize,
		Hits:    l.hits,
		Misses:  l.misses,
	}
}

