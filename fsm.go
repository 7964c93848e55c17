package automaton

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// FSM is a nondeterministic automaton over the byte alphabet, built
// incrementally by the caller. States are dense ints; a new FSM starts with
// its initial state 0 already created, and a (state, letter) pair may lead to
// any number of successors. Feed it to Determinize to obtain an explicit DFA.
type FSM struct {
	numStates int
	edges     []map[byte][]int
	finals    *bitset.BitSet
}

func NewFSM() *FSM {
	f := &FSM{finals: bitset.New(2)}
	f.CreateState()
	return f
}

// CreateState adds a state and returns its id.
func (f *FSM) CreateState() int {
	f.edges = append(f.edges, nil)
	f.numStates++
	return f.numStates - 1
}

// NumStates returns how many states the automaton has.
func (f *FSM) NumStates() int {
	return f.numStates
}

// AddTransition adds an edge from -> to over letter. Parallel duplicate edges
// are kept once.
func (f *FSM) AddTransition(from, to int, letter byte) {
	if f.edges[from] == nil {
		f.edges[from] = make(map[byte][]int)
	}
	if slices.Contains(f.edges[from][letter], to) {
		return
	}
	f.edges[from][letter] = append(f.edges[from][letter], to)
}

// SetAccept marks or unmarks state as accepting.
func (f *FSM) SetAccept(state int, accept bool) {
	f.finals.SetTo(uint(state), accept)
}

// IsAccept reports whether state is accepting.
func (f *FSM) IsAccept(state int) bool {
	return f.finals.Test(uint(state))
}

func (f *FSM) sortedTargets(state int, letter byte) []int {
	targets := slices.Clone(f.edges[state][letter])
	slices.Sort(targets)
	return targets
}

// letterPartition groups bytes that behave identically in every state, so
// determinization iterates a handful of representatives instead of all 256
// values.
func (f *FSM) letterPartition() *Partition[byte] {
	return NewLetterPartition(func(a, b byte) bool {
		for s := 0; s < f.numStates; s++ {
			if !slices.Equal(f.sortedTargets(s, a), f.sortedTargets(s, b)) {
				return false
			}
		}
		return true
	})
}

// Determinize runs the subset construction over the FSM and returns the
// determined automaton. Returns ErrTooManyStates if more than maxSize subset
// states are reachable.
func (f *FSM) Determinize(maxSize int) (*DFA, error) {
	task := &dfaBuildTask{
		fsm:     f,
		letters: f.letterPartition(),
		dfa:     &DFA{},
	}
	if err := Determine[*FrozenIntSet](task, maxSize); err != nil {
		return nil, err
	}
	return task.dfa, nil
}

// dfaBuildTask implements DetermineTask over an FSM: a determined state is a
// frozen set of FSM states, the classic subset construction. The empty set
// shows up as an ordinary (dead) state, which keeps the resulting DFA total.
type dfaBuildTask struct {
	fsm     *FSM
	letters *Partition[byte]
	dfa     *DFA
}

func (t *dfaBuildTask) Letters() *Partition[byte] {
	return t.letters
}

func (t *dfaBuildTask) Initial() *FrozenIntSet {
	return NewFrozenIntSet(0)
}

func (t *dfaBuildTask) Next(state *FrozenIntSet, letter byte) *FrozenIntSet {
	next := NewStateSet()
	for _, s := range state.Members() {
		for _, dest := range t.fsm.edges[s][letter] {
			next.Insert(dest)
		}
	}
	return next.Freeze()
}

func (t *dfaBuildTask) IsRequired(*FrozenIntSet) bool {
	return true
}

func (t *dfaBuildTask) AcceptStates(states []*FrozenIntSet) {
	t.dfa.init(len(states), t.letters)
	for i, set := range states {
		for _, s := range set.Members() {
			if t.fsm.IsAccept(s) {
				t.dfa.finals.Set(uint(i))
				break
			}
		}
	}
}

func (t *dfaBuildTask) Connect(from, to int, letter byte) {
	t.dfa.trans[from*t.dfa.numClasses+t.dfa.classOf[letter]] = to
}

// DFA is a determined automaton: dense states, state 0 initial, exactly one
// successor per state and input byte. Transitions are stored compressed, one
// column per letter class, with a 256-entry byte-to-class index for lookups.
type DFA struct {
	numStates  int
	numClasses int
	letters    *Partition[byte]
	classOf    [maxChar]int
	trans      []int
	finals     *bitset.BitSet
}

func (d *DFA) init(numStates int, letters *Partition[byte]) {
	d.numStates = numStates
	d.numClasses = letters.Size()
	d.letters = letters
	for _, class := range letters.All() {
		for _, member := range class.Members {
			d.classOf[member] = class.Index
		}
	}
	d.trans = make([]int, numStates*d.numClasses)
	d.finals = bitset.New(uint(numStates))
}

// NumStates returns how many states the automaton has.
func (d *DFA) NumStates() int {
	return d.numStates
}

// Letters returns the letter equivalence classes the automaton was
// determined with.
func (d *DFA) Letters() *Partition[byte] {
	return d.letters
}

// IsAccept reports whether state is accepting.
func (d *DFA) IsAccept(state int) bool {
	return d.finals.Test(uint(state))
}

// Next returns the successor of state over letter.
func (d *DFA) Next(state int, letter byte) int {
	return d.trans[state*d.numClasses+d.classOf[letter]]
}

// Run simulates the automaton from the initial state and reports whether the
// input is accepted.
func (d *DFA) Run(input []byte) bool {
	state := 0
	for _, b := range input {
		state = d.Next(state, b)
	}
	return d.IsAccept(state)
}

// Minimize collapses equivalent states and returns the minimal automaton
// accepting the same language. Final and non-final states are treated as
// distinct payload and never merged.
func (d *DFA) Minimize() (*DFA, error) {
	task := &dfaMinimizeTask{dfa: d}
	if err := Minimize(task); err != nil {
		return nil, err
	}

	// Rebuild with one state per equivalence class. Class ids are dense and
	// the initial state's class is always 0, so the initial-state invariant
	// carries over.
	classes := task.classes
	out := &DFA{}
	out.init(classes.Size(), d.letters)
	for state := 0; state < d.numStates; state++ {
		from := classes.Index(state)
		if d.IsAccept(state) {
			out.finals.Set(uint(from))
		}
		for letter, class := range d.letters.All() {
			out.trans[from*out.numClasses+class.Index] = classes.Index(d.Next(state, letter))
		}
	}
	return out, nil
}

// dfaMinimizeTask implements MinimizeTask over a DFA produced by Determinize.
type dfaMinimizeTask struct {
	dfa     *DFA
	classes *Partition[int]
}

func (t *dfaMinimizeTask) IsDetermined() bool {
	return true
}

func (t *dfaMinimizeTask) Size() int {
	return t.dfa.numStates
}

func (t *dfaMinimizeTask) Letters() *Partition[byte] {
	return t.dfa.letters
}

func (t *dfaMinimizeTask) Next(state int, letter byte) int {
	return t.dfa.Next(state, letter)
}

func (t *dfaMinimizeTask) SameClasses(a, b int) bool {
	return t.dfa.IsAccept(a) == t.dfa.IsAccept(b)
}

func (t *dfaMinimizeTask) AcceptPartition(classes *Partition[int]) {
	t.classes = classes
}
