package automaton

import "errors"

var (
	// ErrTooManyStates is returned by Determine when the number of reachable
	// states exceeds the caller-supplied budget. Recoverable: retry with a
	// larger budget or reject the input as too complex.
	ErrTooManyStates = errors.New("state count limit exceeded")

	// ErrNotDetermined is returned by Minimize when the task does not wrap a
	// fully determined automaton.
	ErrNotDetermined = errors.New("automaton is not determined")
)
