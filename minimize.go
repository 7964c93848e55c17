package automaton

// MinimizeTask exposes an already determined automaton to Minimize: states
// are the dense ints [0, Size()), transitions are looked up per letter, and
// an optional payload equivalence keeps semantically distinct states from
// merging. A task must not be shared between concurrent Minimize calls.
type MinimizeTask interface {
	// IsDetermined reports whether the automaton is fully determined.
	// Minimize refuses to run otherwise.
	IsDetermined() bool

	// Size returns the number of states.
	Size() int

	// Letters returns the letter equivalence classes. The partition must stay
	// unchanged for the whole Minimize call.
	Letters() *Partition[byte]

	// Next returns the successor of state over the given letter.
	Next(state int, letter byte) int

	// SameClasses reports whether two states carry equivalent payload (final
	// flags, semantic actions). States it distinguishes are never merged,
	// however alike their transition structure. Tasks without payload return
	// true unconditionally.
	SameClasses(a, b int) bool

	// AcceptPartition is called once, on success, with the converged
	// equivalence classes over state indices.
	AcceptPartition(classes *Partition[int])
}

// classEquality compares two states for one refinement round. On the first
// round (prev == nil) it partitions on the task's payload equivalence alone;
// on later rounds it requires equal previous-round classes for the states and
// for every per-letter successor, which preserves the first round's grouping
// and only ever splits classes further. Transitions are read from the
// denormalized full-alphabet table so the comparison needs no knowledge of
// letter classes.
type classEquality struct {
	tbl     []int  // Size()*maxChar transition table
	letters []byte // distinct class representatives
	prev    []int  // previous round's state -> class id, nil on round one
	task    MinimizeTask
}

func (e *classEquality) same(a, b int) bool {
	if e.task != nil && !e.task.SameClasses(a, b) {
		return false
	}
	if e.prev != nil {
		if e.prev[a] != e.prev[b] {
			return false
		}
		for _, letter := range e.letters {
			if e.prev[e.next(a, letter)] != e.prev[e.next(b, letter)] {
				return false
			}
		}
	}
	return true
}

func (e *classEquality) next(state int, letter byte) int {
	return e.tbl[state*maxChar+int(letter)]
}

// updateClassMap records each state's current partition representative and
// reports whether any assignment moved.
// TODO: only revisit states whose class split last round.
func updateClassMap(clMap []int, classes *Partition[int]) bool {
	changed := false
	for st := range clMap {
		cl := classes.Representative(st)
		if clMap[st] != cl {
			clMap[st] = cl
			changed = true
		}
	}
	return changed
}

// Minimize computes the coarsest partition of the task's states under
// combined transition-structure equality and the task's payload equivalence,
// by Moore-style iterative refinement, and reports it through
// AcceptPartition.
//
// Classes only ever split across rounds, so the fixpoint is reached within
// Size() rounds. That holds even for a SameClasses predicate that is not a
// well-behaved equivalence: after the first round it is never consulted
// again, and later rounds always require equal previous-round classes.
//
// Returns ErrNotDetermined, with no callbacks issued, if the task does not
// wrap a determined automaton.
func Minimize(task MinimizeTask) error {
	if !task.IsDetermined() {
		return ErrNotDetermined
	}

	size := task.Size()

	// Denormalize the per-class transitions into a full-alphabet table: the
	// target of a class representative is copied into the slot of every
	// letter the class stands for.
	distinctLetters := make([]byte, 0, task.Letters().Size())
	detTran := make([]int, size*maxChar)
	for letter, class := range task.Letters().All() {
		distinctLetters = append(distinctLetters, letter)
		for from := 0; from < size; from++ {
			next := task.Next(from, letter)
			for _, member := range class.Members {
				detTran[from*maxChar+int(member)] = next
			}
		}
	}

	first := &classEquality{tbl: detTran, letters: distinctLetters, task: task}
	classes := NewPartition(first.same)
	for state := 0; state < size; state++ {
		classes.Append(state)
	}

	clMap := make([]int, size)
	for i := range clMap {
		clMap[i] = -1
	}
	for updateClassMap(clMap, classes) {
		round := &classEquality{tbl: detTran, letters: distinctLetters, prev: clMap}
		classes.Split(round.same)
	}

	task.AcceptPartition(classes)
	return nil
}
