package dump

import (
	"errors"
	"fmt"
)

var (
	// ErrFileNotFound is returned when the dump path does not exist.
	ErrFileNotFound = errors.New("dump file not found")

	// ErrParse is returned when the file content is not valid JSON.
	ErrParse = errors.New("dump is not valid JSON")

	// ErrValidation is returned when the parsed structure violates the
	// dump invariants. Matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("dump structure is invalid")

	// ErrEmptyDump is returned when the top-level mapping has no types.
	ErrEmptyDump = fmt.Errorf("%w: dump contains no object types", ErrValidation)

	// ErrLoadInProgress is returned when a loader already has a load in flight.
	ErrLoadInProgress = errors.New("a load is already in progress")
)

// ValidationError names the offending type/id of a structural violation.
type ValidationError struct {
	Type   string
	ID     string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Type != "" && e.ID != "":
		return fmt.Sprintf("invalid dump structure at %s/%s: %s", e.Type, e.ID, e.Reason)
	case e.Type != "":
		return fmt.Sprintf("invalid dump structure at type %q: %s", e.Type, e.Reason)
	default:
		return "invalid dump structure: " + e.Reason
	}
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// FieldWarning records a non-fatal problem on a single object field. The
// load proceeds with the field defaulted; warnings are kept on the store
// and logged.
type FieldWarning struct {
	Type   string
	ID     string
	Field  string
	Reason string
}

func (w FieldWarning) String() string {
	return fmt.Sprintf("%s/%s: field %q: %s", w.Type, w.ID, w.Field, w.Reason)
}
