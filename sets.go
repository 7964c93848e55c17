package automaton

import "slices"

// IntSet is a set of ints exposing a canonical sorted view and a content
// hash, so semantically equal sets compare and hash equal regardless of
// insertion order.
type IntSet interface {
	Hashable

	// Members returns the elements in ascending order.
	Members() []int

	Size() int
}

var _ IntSet = &StateSet{}

// StateSet is a mutable set of states accumulated while computing the
// successor of a subset-construction state. Freeze it before using it as a
// map key.
type StateSet struct {
	inner map[int]struct{}
}

func NewStateSet() *StateSet {
	return &StateSet{
		inner: make(map[int]struct{}),
	}
}

// Insert adds state to the set.
func (s *StateSet) Insert(state int) {
	s.inner[state] = struct{}{}
}

// Contains reports whether state is in the set.
func (s *StateSet) Contains(state int) bool {
	_, ok := s.inner[state]
	return ok
}

func (s *StateSet) Members() []int {
	keys := make([]int, 0, len(s.inner))
	for k := range s.inner {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func (s *StateSet) Size() int {
	return len(s.inner)
}

func (s *StateSet) Hash() uint64 {
	return hashInts(s.Members())
}

func (s *StateSet) Equals(other Hashable) bool {
	iset, ok := other.(IntSet)
	if !ok {
		return false
	}
	return s.Size() == iset.Size() && slices.Equal(s.Members(), iset.Members())
}

// Freeze returns an immutable copy with a precomputed hash.
func (s *StateSet) Freeze() *FrozenIntSet {
	members := s.Members()
	return &FrozenIntSet{values: members, hashCode: hashInts(members)}
}

var _ IntSet = &FrozenIntSet{}

// FrozenIntSet is an immutable sorted set of states. Equal sets always carry
// equal hash codes, which makes it a valid HashMap key.
type FrozenIntSet struct {
	values   []int
	hashCode uint64
}

// NewFrozenIntSet builds a frozen set from the given elements; values need
// not be sorted or unique.
func NewFrozenIntSet(values ...int) *FrozenIntSet {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	return &FrozenIntSet{values: sorted, hashCode: hashInts(sorted)}
}

func (f *FrozenIntSet) Hash() uint64 {
	return f.hashCode
}

func (f *FrozenIntSet) Equals(other Hashable) bool {
	iset, ok := other.(IntSet)
	if !ok {
		return false
	}
	if f.hashCode != iset.Hash() {
		return false
	}
	return slices.Equal(f.values, iset.Members())
}

func (f *FrozenIntSet) Members() []int {
	return f.values
}

func (f *FrozenIntSet) Size() int {
	return len(f.values)
}
