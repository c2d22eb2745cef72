package cas

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/dgryski/go-farm"
)

// CAS is a content-addressed store of serialized machine configurations.
type CAS interface {
	Put(item Hashable) (Hash, error)
	Has(hash Hash) bool

	// Step bookkeeping for cycle reports
	RecordStep(h Hash, step int)
	Steps(h Hash) []int
}

type Serde interface {
	Serialize(w io.Writer) error
	Deserialize(r io.Reader) error
}

type Hashable interface {
	Serde
}

type directStore interface {
	getValue(h Hash) (bool, []byte, error)
	putValue(h Hash, data []byte)
}

type Hash uint64

// Encode serializes item and returns its content hash alongside the bytes.
func Encode(item Hashable) (Hash, []byte, error) {
	var buf bytes.Buffer
	if err := item.Serialize(&buf); err != nil {
		return 0, nil, err
	}
	data := buf.Bytes()
	return Hash(farm.Hash64(data)), data, nil
}

// HashOf returns the hash item would be stored under.
func HashOf(item Hashable) (Hash, error) {
	h, _, err := Encode(item)
	return h, err
}

// Retrieve decodes the item stored under hash into a new T.
func Retrieve[T any, PT interface {
	*T
	Hashable
}](c CAS, hash Hash) (*T, error) {
	v, ok := c.(directStore)
	if !ok {
		return nil, errors.New("CAS does not support direct retrieval")
	}
	has, data, err := v.getValue(hash)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, fmt.Errorf("hash not found in CAS: %d", hash)
	}
	var t T
	if err := PT(&t).Deserialize(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("deserializing %T: %w", t, err)
	}
	return &t, nil
}
