package content

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrRecordNotFound indicates a record was not found
	ErrRecordNotFound = errors.New("record not found")

	// ErrInvalidVisibility indicates an unknown visibility value
	ErrInvalidVisibility = errors.New("invalid visibility")

	// ErrMultiplicityViolation indicates a group expected to hold exactly one
	// record held none or several
	ErrMultiplicityViolation = errors.New("multiplicity violation")

	// ErrNilRecord indicates a nil record was passed where one is required
	ErrNilRecord = errors.New("record is nil")
)

// RecordError represents an error related to an operation on one record
type RecordError struct {
	RecordID uuid.UUID
	Op       string
	Err      error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record operation %s failed for record %s: %v", e.Op, e.RecordID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// GroupError reports a group whose size broke a one-to-one expectation.
type GroupError struct {
	Key   any
	Count int
	Err   error
}

func (e *GroupError) Error() string {
	return fmt.Sprintf("group %v has %d records, want exactly 1: %v", e.Key, e.Count, e.Err)
}

func (e *GroupError) Unwrap() error {
	return e.Err
}
