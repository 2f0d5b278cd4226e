// Package services provides standardized error types and business services
// for verification dispatch and deviation decisions.
package services

import (
	"errors"
	"fmt"
)

// Business Logic Errors - These indicate client errors (4xx responses).
var (
	// Validation Errors (400 Bad Request).
	ErrInvalidRequest     = errors.New("invalid request")
	ErrMissingRecordID    = errors.New("record ID is required")
	ErrMissingAction      = errors.New("action name is required")
	ErrInvalidPayload     = errors.New("payload does not match integration schema")
	ErrEmptySelection     = errors.New("selection cannot be empty")
	ErrInvalidDecision    = errors.New("invalid decision filter")
	ErrUnknownRole        = errors.New("unknown role label")
	ErrMissingActorID     = errors.New("actor ID is required")
	ErrMissingAuthorities = errors.New("approving authorities are required")

	// Access Errors (403 Forbidden).
	ErrAccessDenied = errors.New("user is not the record or verification owner")

	// Business Logic Conflicts (409 Conflict).
	ErrDispatchInFlight = errors.New("a dispatch for this record and integration is already in flight")
	ErrAlreadyDecided   = errors.New("already decided")

	// Bulk authorization rejections (422 Unprocessable Entity).
	ErrAuthorizationRejected = errors.New("bulk action rejected")
)

// ServiceError wraps service-level errors with additional context.
type ServiceError struct {
	Op      string // Operation name
	Code    string // Error code for API responses
	Message string // Human-readable message
	Err     error  // Underlying error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func (e *ServiceError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// IsValidationError checks if an error is a validation error that should return HTTP 400.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest) ||
		errors.Is(err, ErrMissingRecordID) ||
		errors.Is(err, ErrMissingAction) ||
		errors.Is(err, ErrInvalidPayload) ||
		errors.Is(err, ErrEmptySelection) ||
		errors.Is(err, ErrInvalidDecision) ||
		errors.Is(err, ErrUnknownRole) ||
		errors.Is(err, ErrMissingActorID) ||
		errors.Is(err, ErrMissingAuthorities)
}

// IsAccessError checks if an error is a local access-gate failure that should return HTTP 403.
func IsAccessError(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsConflictError checks if an error is a business logic conflict that should return HTTP 409.
func IsConflictError(err error) bool {
	return errors.Is(err, ErrDispatchInFlight) ||
		errors.Is(err, ErrAlreadyDecided)
}

// IsAuthorizationError checks if an error is a bulk authorization rejection that should return HTTP 422.
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrAuthorizationRejected)
}

// NewValidationError creates a new validation error with context.
func NewValidationError(op, code, message string, err error) *ServiceError {
	return &ServiceError{
		Op:      op,
		Code:    code,
		Message: message,
		Err:     err,
	}
}
