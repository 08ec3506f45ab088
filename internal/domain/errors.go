package domain

import (
	"errors"
	"fmt"
)

// Pipeline errors. Unknown categorical values and out-of-range numeric
// values are deliberately NOT errors; they are absorbed by the sentinel,
// clamp, and baseline policies in the applier.
var (
	// ErrEmptyTrainingSet indicates that fitting was attempted on a
	// dataset with no records.
	ErrEmptyTrainingSet = errors.New("training set is empty")

	// ErrMissingColumn indicates that a record lacks a column required by
	// the column specification or the fitted state.
	ErrMissingColumn = errors.New("record is missing required column")

	// ErrNonNumeric indicates that a value on a numeric transform column
	// could not be interpreted as a number.
	ErrNonNumeric = errors.New("value is not numeric")

	// ErrNonNumericPassthrough indicates that a passthrough column value
	// could not be cast to a floating-point number.
	ErrNonNumericPassthrough = errors.New("passthrough value is not numeric")

	// ErrSpecOverlap indicates that a column is assigned to more than one
	// transform class in a column specification.
	ErrSpecOverlap = errors.New("column assigned to multiple transform classes")

	// ErrStateNotFound indicates that no fitted state has been persisted
	// at the configured location.
	ErrStateNotFound = errors.New("fitted state not found")

	// ErrStateCorrupt indicates that a persisted state could not be parsed
	// into a valid fitted state.
	ErrStateCorrupt = errors.New("fitted state is corrupt")

	// ErrStateVersion indicates that a persisted state carries a format
	// version this build does not support.
	ErrStateVersion = errors.New("unsupported fitted state version")
)

// ColumnError ties a pipeline failure to the column that caused it, so
// callers can report the offending input without guesswork.
type ColumnError struct {
	Column string
	Err    error
}

// NewColumnError wraps err with the offending column name.
func NewColumnError(column string, err error) *ColumnError {
	return &ColumnError{Column: column, Err: err}
}

// Error returns the column-qualified message.
func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q: %v", e.Column, e.Err)
}

// Unwrap exposes the underlying sentinel for errors.Is checks.
func (e *ColumnError) Unwrap() error { return e.Err }

// RecordError ties a batch failure to the index of the offending record,
// so a caller can isolate bad inputs without discarding the whole batch.
type RecordError struct {
	Index int
	Err   error
}

// NewRecordError wraps err with the offending record index.
func NewRecordError(index int, err error) *RecordError {
	return &RecordError{Index: index, Err: err}
}

// Error returns the index-qualified message.
func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d: %v", e.Index, e.Err)
}

// Unwrap exposes the underlying error for errors.Is/As checks.
func (e *RecordError) Unwrap() error { return e.Err }
