// Package errs provides the kind-tagged errors shared by the twin pipeline.
package errs

import "fmt"

// Kind classifies a pipeline failure.
type Kind string

const (
	KindData             Kind = "data_error"
	KindInsufficientData Kind = "insufficient_data"
	KindInvalidRange     Kind = "invalid_range"
	KindDivisionByZero   Kind = "division_by_zero"
	KindEmptyDataset     Kind = "empty_dataset"
)

// Error is a structured failure with the operation and field that caused it.
type Error struct {
	Kind    Kind   `json:"kind"`
	Op      string `json:"op,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = fmt.Sprintf("%s (field: %s)", msg, e.Field)
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return fmt.Sprintf("[%s] %s", e.Kind, msg)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so the sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrData             = &Error{Kind: KindData, Message: "data error"}
	ErrInsufficientData = &Error{Kind: KindInsufficientData, Message: "insufficient data"}
	ErrInvalidRange     = &Error{Kind: KindInvalidRange, Message: "value out of range"}
	ErrDivisionByZero   = &Error{Kind: KindDivisionByZero, Message: "division by zero"}
	ErrEmptyDataset     = &Error{Kind: KindEmptyDataset, Message: "empty dataset"}
)

// Data reports a missing column or a dataset that is empty after cleaning.
func Data(op, field, format string, args ...any) *Error {
	return &Error{Kind: KindData, Op: op, Field: field, Message: fmt.Sprintf(format, args...)}
}

// InsufficientData reports fewer usable rows than a fit needs.
func InsufficientData(op string, have, need int) *Error {
	return &Error{
		Kind:    KindInsufficientData,
		Op:      op,
		Message: fmt.Sprintf("need at least %d usable rows, have %d", need, have),
	}
}

// InvalidRange reports a value outside its admissible interval.
func InvalidRange(op, field string, value, lo, hi float64) *Error {
	return &Error{
		Kind:    KindInvalidRange,
		Op:      op,
		Field:   field,
		Message: fmt.Sprintf("%g is outside [%g, %g]", value, lo, hi),
	}
}

// DivisionByZero reports a zero (or non-positive) divisor.
func DivisionByZero(op, field string, value float64) *Error {
	return &Error{
		Kind:    KindDivisionByZero,
		Op:      op,
		Field:   field,
		Message: fmt.Sprintf("divisor must be > 0, got %g", value),
	}
}

// EmptyDataset reports a lookup over a dataset with no usable rows.
func EmptyDataset(op, field string) *Error {
	return &Error{Kind: KindEmptyDataset, Op: op, Field: field, Message: "no records with a value"}
}

// Warning is a locally absorbed ingestion problem: the sheet was skipped, the run continued.
type Warning struct {
	Source string `json:"source"`
	Sheet  string `json:"sheet"`
	Reason string `json:"reason"`
}

func (w Warning) String() string {
	return fmt.Sprintf("skipped sheet %q in %s: %s", w.Sheet, w.Source, w.Reason)
}
