package automaton

// DetermineTask describes an automaton indirectly for Determine: an initial
// state, a successor function over letter-class representatives, and
// callbacks that receive the discovered automaton. State values are opaque to
// the algorithm; the Hashable contract is all it needs to deduplicate equal
// states. A task must not be shared between concurrent Determine calls.
type DetermineTask[S Hashable] interface {
	// Letters returns the letter equivalence classes. The partition must stay
	// unchanged for the whole Determine call.
	Letters() *Partition[byte]

	// Initial returns the start state. Called exactly once.
	Initial() S

	// Next computes the successor of state over the given letter-class
	// representative. It must be deterministic and side effect free: it may
	// be called repeatedly with equal inputs and must return equal outputs.
	Next(state S, letter byte) S

	// IsRequired reports whether the state's outgoing transitions should be
	// explored. Tasks with no states to prune return true unconditionally.
	// A skipped state still occupies its index, it just contributes no edges.
	IsRequired(state S) bool

	// AcceptStates is called once, after exploration closes, with every
	// discovered state in discovery order. Position 0 is always the initial
	// state.
	AcceptStates(states []S)

	// Connect is called after AcceptStates, once per (source state, concrete
	// letter) pair, in ascending source order. Letters are already expanded
	// from their classes, so the task needn't consult the partition again.
	Connect(from, to int, letter byte)
}

// Determine enumerates all states reachable from task.Initial() via
// task.Next() over the letter-class representatives, breadth first, assigning
// each state a dense index in discovery order, and hands the complete
// automaton back through AcceptStates and Connect.
//
// The initial state is always placed at index 0.
//
// Determine does not track any payload (final flags and the like); gluing
// payload onto the discovered states is the task's job.
//
// Returns ErrTooManyStates, with no callbacks issued, if more than maxSize
// states are reachable.
func Determine[S Hashable](task DetermineTask[S], maxSize int) error {
	letters := task.Letters()

	states := make([]S, 0, 1)
	invStates := NewHashMap[int](16)
	transitions := make([][]int, 0)
	stateIndices := make([]int, 0)

	states = append(states, task.Initial())
	invStates.Set(states[0], 0)

	// The discovered-state list doubles as the frontier: states appended
	// inside the loop are picked up by the same index scan.
	for stateIdx := 0; stateIdx < len(states); stateIdx++ {
		if !task.IsRequired(states[stateIdx]) {
			continue
		}
		row := make([]int, letters.Size())
		for letter, class := range letters.All() {
			next := task.Next(states[stateIdx], letter)
			target, ok := invStates.Get(next)
			if !ok {
				if len(states) >= maxSize {
					return ErrTooManyStates
				}
				target = len(states)
				invStates.Set(next, target)
				states = append(states, next)
			}
			row[class.Index] = target
		}
		transitions = append(transitions, row)
		stateIndices = append(stateIndices, stateIdx)
	}

	// Inverse map from class id back to the concrete letters it stands for.
	classLetters := make([][]byte, letters.Size())
	for _, class := range letters.All() {
		classLetters[class.Index] = class.Members
	}

	task.AcceptStates(states)
	for i, row := range transitions {
		from := stateIndices[i]
		for classIdx, to := range row {
			for _, letter := range classLetters[classIdx] {
				task.Connect(from, to, letter)
			}
		}
	}
	return nil
}
