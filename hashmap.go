package automaton

import "iter"

// Hashable is a key that knows its own hash and equality. Buckets are chosen
// by Hash and collisions resolved with Equals, so Hash has to be well
// distributed but not unique.
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

// HashMap is a chained hash map keyed by Hashable values. It is not safe for
// concurrent use; every map in this package is owned by a single call frame.
type HashMap[T any] struct {
	buckets []*entry[T]
	size    int
	mask    uint64
}

type entry[T any] struct {
	key   Hashable
	value T
	next  *entry[T]
}

const hashMapLoadFactor = 0.75

// NewHashMap creates a map with at least the given initial capacity, rounded
// up to a power of two.
func NewHashMap[T any](capacity int) *HashMap[T] {
	realCap := 1
	for realCap < capacity {
		realCap <<= 1
	}
	return &HashMap[T]{
		buckets: make([]*entry[T], realCap),
		mask:    uint64(realCap - 1),
	}
}

// Set inserts the key/value pair, replacing the value if the key is present.
func (m *HashMap[T]) Set(key Hashable, value T) {
	index := key.Hash() & m.mask

	for e := m.buckets[index]; e != nil; e = e.next {
		if e.key.Equals(key) {
			e.value = value
			return
		}
	}

	m.buckets[index] = &entry[T]{
		key:   key,
		value: value,
		next:  m.buckets[index],
	}
	m.size++

	if float64(m.size)/float64(len(m.buckets)) > hashMapLoadFactor {
		m.resize()
	}
}

// Get returns the value stored under key, if any.
func (m *HashMap[T]) Get(key Hashable) (T, bool) {
	index := key.Hash() & m.mask

	for e := m.buckets[index]; e != nil; e = e.next {
		if e.key.Equals(key) {
			return e.value, true
		}
	}
	var zero T
	return zero, false
}

// Delete removes key from the map if present.
func (m *HashMap[T]) Delete(key Hashable) {
	index := key.Hash() & m.mask

	var prev *entry[T]
	for e := m.buckets[index]; e != nil; prev, e = e, e.next {
		if e.key.Equals(key) {
			if prev == nil {
				m.buckets[index] = e.next
			} else {
				prev.next = e.next
			}
			m.size--
			return
		}
	}
}

func (m *HashMap[T]) resize() {
	newCap := len(m.buckets) << 1
	newBuckets := make([]*entry[T], newCap)
	newMask := uint64(newCap - 1)

	for _, head := range m.buckets {
		for e := head; e != nil; e = e.next {
			newIndex := e.key.Hash() & newMask
			newBuckets[newIndex] = &entry[T]{
				key:   e.key,
				value: e.value,
				next:  newBuckets[newIndex],
			}
		}
	}

	m.buckets = newBuckets
	m.mask = newMask
}

// Size returns the number of stored entries.
func (m *HashMap[T]) Size() int {
	return m.size
}

// Iterator walks all entries in unspecified order.
func (m *HashMap[T]) Iterator() iter.Seq2[Hashable, T] {
	return func(yield func(Hashable, T) bool) {
		for _, bucket := range m.buckets {
			for e := bucket; e != nil; e = e.next {
				if !yield(e.key, e.value) {
					return
				}
			}
		}
	}
}
