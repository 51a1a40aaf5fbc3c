package rationals

import (
	"errors"
	"fmt"
)

var (
	// ErrRangeExhausted is matched by every RangeError. It reports that the
	// next value of a sequence is not representable in its integer type.
	ErrRangeExhausted = errors.New("integer range exhausted")
	// ErrOverflow is returned by Rational arithmetic whose result does not fit.
	ErrOverflow = errors.New("integer overflow")
	// ErrZeroDivision is returned when taking the reciprocal of zero.
	ErrZeroDivision = errors.New("reciprocal of zero")
	// ErrNotPositive is returned for zero or negative numerators and denominators.
	ErrNotPositive = errors.New("value must be strictly positive")
	// ErrOutOfRange is returned by Complement for inputs outside [0, 1).
	ErrOutOfRange = errors.New("value out of range")
	// ErrUnknownKind is returned by a Factory for an unregistered integer kind.
	ErrUnknownKind = errors.New("unknown integer kind")
)

// RangeError describes the point at which an enumerator ran past the range of
// its integer type.
type RangeError struct {
	// Kind is the integer type name, e.g. "int8".
	Kind string
	// Position is the zero-based index that could not be produced.
	Position uint64
	// Last is the final value that was produced.
	Last string
	// Cause is the arithmetic error raised while computing the successor.
	Cause error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s range exhausted at index %d (successor of %s): %v",
		e.Kind, e.Position, e.Last, e.Cause)
}

// Is makes errors.Is(err, ErrRangeExhausted) hold for any RangeError.
func (e *RangeError) Is(target error) bool {
	return target == ErrRangeExhausted
}

// Unwrap returns the arithmetic cause.
func (e *RangeError) Unwrap() error { return e.Cause }

// UnknownKindError is returned when a kind name is not registered.
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return "unknown integer kind: " + e.Name
}

// Is makes errors.Is(err, ErrUnknownKind) hold.
func (e *UnknownKindError) Is(target error) bool {
	return target == ErrUnknownKind
}
