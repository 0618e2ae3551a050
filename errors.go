package qit

import "errors"

// Sentinel errors reported by state constructors, gate application and
// circuit generators. All are detected at construction or apply time and
// are recoverable by the caller.
var (
	// ErrInvalidSize is returned when a qubit count is zero or exceeds
	// MaxQubits.
	ErrInvalidSize = errors.New("invalid qubit count")

	// ErrInvalidIndex is returned when a basis index is out of range for
	// the given qubit count.
	ErrInvalidIndex = errors.New("basis index out of range")

	// ErrInvalidQubitIndex is returned when a gate references a qubit
	// position outside the state, or one already claimed by an enclosing
	// control.
	ErrInvalidQubitIndex = errors.New("qubit index out of range")

	// ErrInvalidRegister is returned by circuit generators when the
	// register indices are inconsistent with the requested width or
	// constant.
	ErrInvalidRegister = errors.New("invalid register")
)
