package automaton

import "iter"

// maxChar is the size of the concrete input alphabet. Everything downstream
// of determinization works on bytes.
const maxChar = 256

// EqualFunc reports whether two items belong to the same equivalence class.
type EqualFunc[T comparable] func(a, b T) bool

// Class is one equivalence class of a Partition: a dense id plus the members,
// the first of which is the class representative.
type Class[T comparable] struct {
	Index   int
	Members []T
}

// Partition groups items into disjoint equivalence classes under a
// caller-supplied equality. Class ids are dense, assigned in creation order.
// Classes support refinement: Split re-groups every member under a new
// equality, and as long as the new equality implies the old grouping it only
// ever subdivides classes, never merges them.
type Partition[T comparable] struct {
	eq      EqualFunc[T]
	classes []Class[T]
	index   map[T]int
}

func NewPartition[T comparable](eq EqualFunc[T]) *Partition[T] {
	return &Partition[T]{
		eq:    eq,
		index: make(map[T]int),
	}
}

// Append places item into the first class whose representative compares
// equal, opening a new class when none does.
func (p *Partition[T]) Append(item T) {
	for i := range p.classes {
		if p.eq(p.classes[i].Members[0], item) {
			p.classes[i].Members = append(p.classes[i].Members, item)
			p.index[item] = i
			return
		}
	}
	p.index[item] = len(p.classes)
	p.classes = append(p.classes, Class[T]{
		Index:   len(p.classes),
		Members: []T{item},
	})
}

// Split replaces the equality and redistributes every member under it.
// Members are re-appended class by class, so the representative of the first
// class stays in class 0.
func (p *Partition[T]) Split(eq EqualFunc[T]) {
	p.eq = eq
	old := p.classes
	p.classes = nil
	p.index = make(map[T]int, len(p.index))
	for _, cl := range old {
		for _, item := range cl.Members {
			p.Append(item)
		}
	}
}

// Contains reports whether item has been appended.
func (p *Partition[T]) Contains(item T) bool {
	_, ok := p.index[item]
	return ok
}

// Representative returns the representative of item's class. The item must
// have been appended.
func (p *Partition[T]) Representative(item T) T {
	return p.classes[p.index[item]].Members[0]
}

// Index returns the dense id of item's class. The item must have been
// appended.
func (p *Partition[T]) Index(item T) int {
	return p.index[item]
}

// Size returns the number of classes.
func (p *Partition[T]) Size() int {
	return len(p.classes)
}

// Count returns the number of appended members.
func (p *Partition[T]) Count() int {
	return len(p.index)
}

// All iterates the classes in id order, yielding each representative and its
// class.
func (p *Partition[T]) All() iter.Seq2[T, Class[T]] {
	return func(yield func(T, Class[T]) bool) {
		for _, cl := range p.classes {
			if !yield(cl.Members[0], cl) {
				return
			}
		}
	}
}

// NewLetterPartition builds a partition of the full byte alphabet under the
// given equality, grouping letters that an automaton cannot tell apart so
// exploration iterates class representatives instead of all 256 values.
func NewLetterPartition(eq EqualFunc[byte]) *Partition[byte] {
	p := NewPartition(eq)
	for c := range maxChar {
		p.Append(byte(c))
	}
	return p
}
