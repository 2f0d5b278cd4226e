package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrDeviationNotFound indicates a deviation was not found by the given identifier.
	ErrDeviationNotFound = errors.New("deviation not found")

	// ErrRecordNotFound indicates an applicant record was not found.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDeviationAlreadyExists indicates a deviation with the same identifier already exists.
	ErrDeviationAlreadyExists = errors.New("deviation already exists")
)

// StoreError wraps persistence errors with operation context.
type StoreError struct {
	Op  string // Operation being performed (e.g., "GetByID", "Save")
	ID  string // Entity ID if applicable
	Err error  // Underlying error
}

func (e *StoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s operation failed for %s: %v", e.Op, e.ID, e.Err)
	}

	return fmt.Sprintf("%s operation failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewStoreError creates a new persistence error with context.
func NewStoreError(op, id string, err error) *StoreError {
	return &StoreError{Op: op, ID: id, Err: err}
}

// IsDeviationNotFound checks if an error indicates a missing deviation.
func IsDeviationNotFound(err error) bool {
	return errors.Is(err, ErrDeviationNotFound)
}

// IsRecordNotFound checks if an error indicates a missing applicant record.
func IsRecordNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}
