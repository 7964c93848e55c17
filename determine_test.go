package automaton

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridState is a plain int state for driving Determine from an explicit
// successor function.
type gridState int

func (s gridState) Hash() uint64 {
	return uint64(s)
}

func (s gridState) Equals(other Hashable) bool {
	o, ok := other.(gridState)
	return ok && s == o
}

type gridEdge struct {
	from, to int
	letter   byte
}

type gridTask struct {
	letters  *Partition[byte]
	next     func(state int, letter byte) int
	required func(state int) bool
	states   []gridState
	edges    []gridEdge
}

func (t *gridTask) Letters() *Partition[byte] {
	return t.letters
}

func (t *gridTask) Initial() gridState {
	return 0
}

func (t *gridTask) Next(state gridState, letter byte) gridState {
	return gridState(t.next(int(state), letter))
}

func (t *gridTask) IsRequired(state gridState) bool {
	if t.required == nil {
		return true
	}
	return t.required(int(state))
}

func (t *gridTask) AcceptStates(states []gridState) {
	t.states = slices.Clone(states)
}

func (t *gridTask) Connect(from, to int, letter byte) {
	t.edges = append(t.edges, gridEdge{from: from, to: to, letter: letter})
}

func singleClassLetters() *Partition[byte] {
	return NewLetterPartition(func(a, b byte) bool {
		return true
	})
}

func halfClassLetters() *Partition[byte] {
	return NewLetterPartition(func(a, b byte) bool {
		return (a < 128) == (b < 128)
	})
}

func TestDetermineRing(t *testing.T) {
	task := &gridTask{
		letters: singleClassLetters(),
		next: func(state int, letter byte) int {
			return (state + 1) % 5
		},
	}
	require.NoError(t, Determine[gridState](task, 100))

	// Initial state at index 0, discovery order after it.
	assert.Equal(t, []gridState{0, 1, 2, 3, 4}, task.states)

	// One edge per (state, concrete letter).
	assert.Len(t, task.edges, 5*maxChar)

	seen := make(map[gridEdge]int)
	lastFrom := 0
	for _, e := range task.edges {
		assert.LessOrEqual(t, lastFrom, e.from, "edges must come in ascending source order")
		lastFrom = e.from
		seen[e]++

		// Cross-check against the task's own successor function.
		assert.Equal(t, gridState(e.to), task.Next(task.states[e.from], e.letter))
	}
	for e, count := range seen {
		assert.Equal(t, 1, count, "duplicate edge %v", e)
	}
}

func TestDetermineDeduplicates(t *testing.T) {
	// Diamond: both branches of state 0 reconverge on state 3.
	task := &gridTask{
		letters: halfClassLetters(),
		next: func(state int, letter byte) int {
			switch state {
			case 0:
				if letter < 128 {
					return 1
				}
				return 2
			case 1, 2:
				return 3
			default:
				return 3
			}
		},
	}
	require.NoError(t, Determine[gridState](task, 100))

	assert.Equal(t, []gridState{0, 1, 2, 3}, task.states)
	assert.Len(t, task.edges, 4*maxChar)
}

func TestDetermineIsRequired(t *testing.T) {
	task := &gridTask{
		letters: halfClassLetters(),
		next: func(state int, letter byte) int {
			if state == 0 {
				if letter < 128 {
					return 1
				}
				return 2
			}
			return state
		},
		required: func(state int) bool {
			return state != 1
		},
	}
	require.NoError(t, Determine[gridState](task, 100))

	// A skipped state still occupies its index in discovery order.
	assert.Equal(t, []gridState{0, 1, 2}, task.states)

	// It just has no outgoing edges.
	for _, e := range task.edges {
		assert.NotEqual(t, 1, e.from)
	}
	assert.Len(t, task.edges, 2*maxChar)
}

func TestDetermineBudget(t *testing.T) {
	t.Run("unboundedGrowthFails", func(t *testing.T) {
		task := &gridTask{
			letters: singleClassLetters(),
			next: func(state int, letter byte) int {
				return state + 1
			},
		}
		err := Determine[gridState](task, 5)
		require.ErrorIs(t, err, ErrTooManyStates)

		// No callbacks on failure.
		assert.Nil(t, task.states)
		assert.Nil(t, task.edges)
	})

	t.Run("exactBudgetSucceeds", func(t *testing.T) {
		task := &gridTask{
			letters: singleClassLetters(),
			next: func(state int, letter byte) int {
				return (state + 1) % 5
			},
		}
		require.NoError(t, Determine[gridState](task, 5))
		assert.Len(t, task.states, 5)
	})

	t.Run("oneBelowBudgetFails", func(t *testing.T) {
		task := &gridTask{
			letters: singleClassLetters(),
			next: func(state int, letter byte) int {
				return (state + 1) % 5
			},
		}
		require.ErrorIs(t, Determine[gridState](task, 4), ErrTooManyStates)
	})
}
