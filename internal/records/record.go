package records

import (
	"errors"
	"fmt"
)

// Record is one row of tabular input keyed by header field name. Values are
// raw text until a field is normalized.
type Record map[string]any

// RecordSet is an ordered collection of records from one load.
type RecordSet []Record

var (
	// ErrMissingField is returned when a record has no value for a field.
	ErrMissingField = errors.New("missing field")
	// ErrEmptyRecordSet is returned by Mean when there is nothing to average.
	ErrEmptyRecordSet = errors.New("cannot average an empty record set")
	// ErrNotNumeric is returned when a value cannot be used as a number.
	ErrNotNumeric = errors.New("value is not numeric")
)

// FieldError reports a per-record failure on a named field.
type FieldError struct {
	Field string
	Index int
	Value any
	Err   error
}

func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrMissingField) {
		return fmt.Sprintf("record %d: missing field %q", e.Index, e.Field)
	}
	return fmt.Sprintf("record %d: field %q value %v: %v", e.Index, e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }
