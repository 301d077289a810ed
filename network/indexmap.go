package network

import (
	"encoding/binary"

	"github.com/parallelchain-io/pchain-world-state/pwserr"
)

// ErrFull is returned when an IndexMap or IndexHeap is asked to grow past
// its fixed capacity.
var ErrFull = pwserr.ErrInvalidArgument

const (
	prefixLength     byte = 0x00
	prefixKeyIndex   byte = 0x01
	prefixIndexValue byte = 0x02
)

// IndexMap is a reverse-indexed map over Storage: it supports lookup by
// position (for iteration) and by key (for point lookups), at the cost of
// writing two entries per element. Grounded on the reference crate's
// IndexMap (index_map.rs); Go generics replace its type-parameter-plus-trait
// scheme.
type IndexMap[V Entry] struct {
	store    Storage
	domain   []byte
	capacity uint32
	decode   func([]byte) V
}

// NewIndexMap opens an IndexMap scoped under domain, bounded to capacity
// elements. decode must be the inverse of every V's Encode.
func NewIndexMap[V Entry](store Storage, domain []byte, capacity uint32, decode func([]byte) V) *IndexMap[V] {
	return &IndexMap[V]{store: store, domain: domain, capacity: capacity, decode: decode}
}

func (m *IndexMap[V]) lengthKey() []byte {
	return append(append([]byte{}, m.domain...), prefixLength)
}

func (m *IndexMap[V]) keyIndexKey(key []byte) []byte {
	k := append([]byte{}, m.domain...)
	k = append(k, prefixKeyIndex)
	return append(k, key...)
}

func (m *IndexMap[V]) indexValueKey(index uint32) []byte {
	k := append([]byte{}, m.domain...)
	k = append(k, prefixIndexValue)
	return append(k, le32(index)...)
}

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

// Length returns the number of elements currently stored. An uninitialized
// IndexMap has length 0.
func (m *IndexMap[V]) Length() uint32 {
	b, ok := m.store.Get(m.lengthKey())
	if !ok || len(b) != 4 {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (m *IndexMap[V]) setLength(length uint32) {
	m.store.Set(m.lengthKey(), le32(length))
}

func (m *IndexMap[V]) indexOfKey(key []byte) (uint32, bool) {
	b, ok := m.store.Get(m.keyIndexKey(key))
	if !ok || len(b) != 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}

// Get returns the element at index, or ok=false if index is out of range or
// unset.
func (m *IndexMap[V]) Get(index uint32) (v V, ok bool) {
	if index >= m.capacity {
		return v, false
	}
	b, found := m.store.Get(m.indexValueKey(index))
	if !found {
		return v, false
	}
	return m.decode(b), true
}

// GetBy returns the element whose Key() equals key.
func (m *IndexMap[V]) GetBy(key []byte) (v V, ok bool) {
	index, found := m.indexOfKey(key)
	if !found {
		return v, false
	}
	return m.Get(index)
}

// set writes value at index, maintaining both the key->index and
// index->value entries.
func (m *IndexMap[V]) set(index uint32, value V) {
	m.store.Set(m.keyIndexKey(value.Key()), le32(index))
	m.store.Set(m.indexValueKey(index), value.Encode())
}

func (m *IndexMap[V]) delete(index uint32, key []byte) {
	m.store.Delete(m.keyIndexKey(key))
	m.store.Delete(m.indexValueKey(index))
}

// Push appends value at the end of the map. Returns ErrInvalidArgument if
// the map is already at capacity.
func (m *IndexMap[V]) Push(value V) error {
	length := m.Length()
	if length >= m.capacity {
		return ErrFull
	}
	m.set(length, value)
	m.setLength(length + 1)
	return nil
}

// Reset replaces every element with values, equivalent to Clear followed by
// pushing each of values in order.
func (m *IndexMap[V]) Reset(values []V) error {
	if uint32(len(values)) > m.capacity {
		return ErrFull
	}
	m.Clear()
	for i, v := range values {
		m.set(uint32(i), v)
	}
	m.setLength(uint32(len(values)))
	return nil
}

// Clear removes every element and resets the length to 0.
func (m *IndexMap[V]) Clear() {
	length := m.Length()
	for i := uint32(0); i < length; i++ {
		v, ok := m.Get(i)
		if !ok {
			continue
		}
		m.delete(i, v.Key())
	}
	m.setLength(0)
}

// Values returns every element in index order.
func (m *IndexMap[V]) Values() []V {
	length := m.Length()
	out := make([]V, 0, length)
	for i := uint32(0); i < length; i++ {
		if v, ok := m.Get(i); ok {
			out = append(out, v)
		}
	}
	return out
}
