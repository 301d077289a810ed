package network

// IndexHeap layers a persistent binary heap on top of an IndexMap. compare
// must return a positive value when a outranks b (a belongs closer to the
// root), matching the "higher return value wins" convention idiomatic Go
// heaps use; to get the reference crate's min-heap behaviour, invert the
// comparator, and to get this module's max-heap-by-Power (spec invariant
// I6: Power descending, ties broken by greater operator address), compare
// simply implements that ordering directly. Grounded on index_heap.rs, with
// every up/down-heapify comparison inverted relative to that min-heap
// source to express a max-heap instead.
type IndexHeap[V Entry] struct {
	*IndexMap[V]
	compare func(a, b V) int
}

func NewIndexHeap[V Entry](store Storage, domain []byte, capacity uint32, decode func([]byte) V, compare func(a, b V) int) *IndexHeap[V] {
	return &IndexHeap[V]{
		IndexMap: NewIndexMap(store, domain, capacity, decode),
		compare:  compare,
	}
}

// outranks reports whether a belongs nearer the root than b.
func (h *IndexHeap[V]) outranks(a, b V) bool {
	return h.compare(a, b) > 0
}

// Extract removes and returns the highest-priority element, or ok=false if
// the heap is empty.
func (h *IndexHeap[V]) Extract() (v V, ok bool) {
	length := h.Length()
	if length == 0 {
		return v, false
	}
	root, _ := h.Get(0)
	if length == 1 {
		h.setLength(0)
		h.delete(0, root.Key())
		return root, true
	}
	first, _ := h.Get(0)
	last, _ := h.Get(length - 1)
	h.replace(0, first, length-1, last)
	h.setLength(length - 1)
	h.downHeapify(0, length-1)
	return root, true
}

// Insert adds value to the heap. Returns ErrFull if the heap is already at
// capacity; callers needing eviction should use InsertExtract instead.
func (h *IndexHeap[V]) Insert(value V) error {
	length := h.Length()
	if length == h.capacity {
		return ErrFull
	}
	h.set(length, value)
	h.setLength(length + 1)
	h.upHeapify(length)
	return nil
}

// InsertExtract inserts value, evicting the current lowest-priority element
// if the heap is full. It returns the evicted element (wasEvicted=true) if one was
// evicted, or returns ErrFull without inserting if the heap is full and
// value would itself be the lowest-priority element.
func (h *IndexHeap[V]) InsertExtract(value V) (evicted V, wasEvicted bool, err error) {
	length := h.Length()
	if length == 0 {
		_ = h.Insert(value)
		return evicted, false, nil
	}
	// The lowest-priority element in a max-heap is not at a fixed position;
	// a linear scan is required to find it.
	weakestIdx, weakest := h.weakest(length)
	if length == h.capacity {
		if h.outranks(weakest, value) {
			return evicted, false, ErrFull
		}
		if weakestIdx == length-1 {
			h.delete(weakestIdx, weakest.Key())
			h.setLength(length - 1)
		} else {
			h.replace(weakestIdx, weakest, length-1, mustGet(h, length-1))
			h.setLength(length - 1)
			h.downHeapify(weakestIdx, length-1)
			h.upHeapify(weakestIdx)
		}
		evicted, wasEvicted = weakest, true
	}
	_ = h.Insert(value)
	return evicted, wasEvicted, nil
}

func mustGet[V Entry](h *IndexHeap[V], index uint32) V {
	v, _ := h.Get(index)
	return v
}

func (h *IndexHeap[V]) weakest(length uint32) (uint32, V) {
	idx := uint32(0)
	val, _ := h.Get(0)
	for i := uint32(1); i < length; i++ {
		v, _ := h.Get(i)
		if h.outranks(val, v) {
			idx, val = i, v
		}
	}
	return idx, val
}

// ChangeKey updates the element sharing value's Key() to value, re-heapifying
// as needed. It is a no-op if no element with that key is present.
func (h *IndexHeap[V]) ChangeKey(value V) {
	length := h.Length()
	index, found := h.indexOfKey(value.Key())
	if !found || index >= length {
		return
	}
	old, _ := h.Get(index)
	switch {
	case h.outranks(old, value):
		// old ranked higher than the new value: it sinks.
		h.set(index, value)
		h.downHeapify(index, length)
	case h.outranks(value, old):
		// new value ranks higher: it rises.
		h.set(index, value)
		h.upHeapify(index)
	default:
		h.set(index, value)
	}
}

// UnorderedValues returns every element, in storage order rather than
// priority order.
func (h *IndexHeap[V]) UnorderedValues() []V {
	return h.Values()
}

// RemoveItem removes the element keyed by key, if present.
func (h *IndexHeap[V]) RemoveItem(key []byte) {
	length := h.Length()
	index, found := h.indexOfKey(key)
	if !found || index >= length {
		return
	}
	if index == 0 {
		h.Extract()
		return
	}
	if index == length-1 {
		h.delete(index, key)
		h.setLength(length - 1)
		return
	}
	this, _ := h.Get(index)
	last, _ := h.Get(length - 1)
	outranksLast := h.outranks(this, last)
	outrankedByLast := h.outranks(last, this)
	h.replace(index, this, length-1, last)
	h.setLength(length - 1)
	switch {
	case outrankedByLast:
		// last ranked higher than this: it rises.
		h.upHeapify(index)
	case outranksLast:
		// last ranked lower than this: it sinks.
		h.downHeapify(index, length-1)
	}
}

func (h *IndexHeap[V]) downHeapify(index, length uint32) {
	for {
		left, right := 2*index+1, 2*index+2
		head := index
		headV, _ := h.Get(head)
		if left < length {
			leftV, _ := h.Get(left)
			if h.outranks(leftV, headV) {
				head, headV = left, leftV
			}
		}
		if right < length {
			rightV, _ := h.Get(right)
			if h.outranks(rightV, headV) {
				head = right
			}
		}
		if head == index {
			return
		}
		a, _ := h.Get(index)
		b, _ := h.Get(head)
		h.swap(index, a, head, b)
		index = head
	}
}

func (h *IndexHeap[V]) upHeapify(index uint32) {
	for index != 0 {
		parent := (index - 1) / 2
		value, _ := h.Get(index)
		parentV, _ := h.Get(parent)
		if !h.outranks(value, parentV) {
			return
		}
		h.swap(index, value, parent, parentV)
		index = parent
	}
}

// replace moves fromV into toIndex's slot, dropping fromIndex's and toV's
// old key->index entries. Mirrors index_heap.rs's replace: used by Extract
// and RemoveItem when collapsing the heap's last element into a freed slot.
func (h *IndexHeap[V]) replace(toIndex uint32, toV V, fromIndex uint32, fromV V) {
	h.store.Delete(h.indexValueKey(fromIndex))
	h.store.Delete(h.keyIndexKey(toV.Key()))
	h.set(toIndex, fromV)
}

func (h *IndexHeap[V]) swap(i uint32, iV V, j uint32, jV V) {
	h.set(i, jV)
	h.set(j, iV)
}
