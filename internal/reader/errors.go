package reader

import (
	"fmt"
)

// MalformedRecordError is returned when a non-blank line of the index is not valid JSON,
// or is valid JSON but does not describe a vertex or edge of the LSIF vocabulary.
type MalformedRecordError struct {
	// Line is the 1-based line number of the offending record.
	Line int
	Err  error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed record on line %d: %s", e.Line, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// MissingFieldError is returned when a record lacks a field required for its declared
// type and label.
type MissingFieldError struct {
	// Line is the 1-based line number of the offending record.
	Line  int
	Type  string
	Label string
	Field string
}

func (e *MissingFieldError) Error() string {
	if e.Label == "" {
		return fmt.Sprintf("record on line %d is missing required field %q", e.Line, e.Field)
	}

	return fmt.Sprintf("%s %q on line %d is missing required field %q", e.Type, e.Label, e.Line, e.Field)
}
