package intcode

import "errors"

// Errors returned by a Machine. They are wrapped with the offending address
// or value; use errors.Is to match them.
var (
	// ErrDecode is returned for an unknown opcode or parameter mode.
	ErrDecode = errors.New("intcode: bad instruction")
	// ErrStarved is returned when an input instruction finds the input
	// queue empty.
	ErrStarved = errors.New("intcode: input queue empty")
	// ErrState is returned when the machine is driven from the wrong state:
	// Step or Run when it is not Running, or Resume when it is not Halted.
	ErrState = errors.New("intcode: wrong machine state")
	// ErrBounds is returned for a memory access outside the tape.
	ErrBounds = errors.New("intcode: address out of bounds")
)
