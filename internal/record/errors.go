package record

import (
	"errors"
	"fmt"
)

// Kind classifies a construction failure.
type Kind int

const (
	TypeKind Kind = iota + 1
	ShapeKind
	ValueKind
)

func (k Kind) String() string {
	switch k {
	case TypeKind:
		return "invalid-argument-type"
	case ShapeKind:
		return "invalid-argument-shape"
	case ValueKind:
		return "invalid-argument-value"
	default:
		return "unknown"
	}
}

var (
	// ErrInvalidType indicates the input is not a numeric table at all.
	ErrInvalidType = errors.New("record: invalid argument type")

	// ErrInvalidShape indicates the input is not an n-by-3 table with n >= 2.
	ErrInvalidShape = errors.New("record: invalid argument shape")

	// ErrInvalidValue indicates the input has the right shape but unusable values.
	ErrInvalidValue = errors.New("record: invalid argument value")

	// ErrNonFinite indicates a NaN or Inf entry in the input table.
	ErrNonFinite = errors.New("record: NaN or Inf in input table")

	// ErrNonIncreasingTime indicates the time column is not strictly increasing.
	ErrNonIncreasingTime = errors.New("record: time column not strictly increasing")

	// ErrUninitialized is returned by collaborators handed a constants-only record.
	ErrUninitialized = errors.New("record: no path data bound to record")
)

// ValidationError carries the failing kind and, where it applies, the offending cell.
// Row and Col are -1 when the failure is not tied to a single entry.
type ValidationError struct {
	Kind   Kind
	Row    int
	Col    int
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("record: %s: %s", e.Kind, e.Reason)
	if e.Row >= 0 {
		msg += fmt.Sprintf(" (row %d", e.Row)
		if e.Col >= 0 {
			msg += fmt.Sprintf(", col %d", e.Col)
		}
		msg += ")"
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is matches the kind-level sentinel in addition to the wrapped reason.
func (e *ValidationError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (k Kind) sentinel() error {
	switch k {
	case TypeKind:
		return ErrInvalidType
	case ShapeKind:
		return ErrInvalidShape
	case ValueKind:
		return ErrInvalidValue
	default:
		return nil
	}
}

// KindOf reports the failure kind of err, or 0 if err is not a validation error.
func KindOf(err error) Kind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return 0
}

func typeError(reason string) *ValidationError {
	return &ValidationError{Kind: TypeKind, Row: -1, Col: -1, Reason: reason, Err: ErrInvalidType}
}

func shapeError(reason string, row int) *ValidationError {
	return &ValidationError{Kind: ShapeKind, Row: row, Col: -1, Reason: reason, Err: ErrInvalidShape}
}
