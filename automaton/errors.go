package automaton

import "errors"

// ErrIncompleteFanIn is returned when a stage finishes with tasks still
// awaiting inbound messages and no communicator is configured to
// block for the remainder (spec.md §4.3 step 5 has no off-node source
// to pull from in a single-node run).
var ErrIncompleteFanIn = errors.New("automaton: stage ended with undelivered fan-in and no communicator configured")

// ErrOptionViolation names the condition of an invalid Option. No
// function in this package returns it: NewCoordinator returns no error,
// and the WithXxx options ignore nil arguments.
var ErrOptionViolation = errors.New("automaton: invalid option supplied")
