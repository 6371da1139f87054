package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates that an operation was attempted from a status that does not allow it.
var ErrInvalidState = errors.New("operation not allowed in current state")

// ErrConflict indicates that a requested time slot collides with existing
// appointments, partner availability, breaks or blocked dates.
var ErrConflict = errors.New("scheduling conflict")

// ErrDependency indicates that a best-effort side effect (notification,
// commission posting) failed. It is logged and swallowed at the boundary of
// the side effect, never surfaced to callers.
var ErrDependency = errors.New("dependency failure")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// AppError wraps a lower-level error with a status code and message.
// Used mostly by the repository layer for infrastructure failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// ConflictError carries the structured conflict reasons produced by the
// availability engine. It unwraps to ErrConflict so callers can match with
// errors.Is while still reaching the individual reasons.
type ConflictError struct {
	Reasons []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", ErrConflict.Error(), strings.Join(e.Reasons, "; "))
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// NewConflictError builds a ConflictError from individual reason strings.
func NewConflictError(reasons ...string) *ConflictError {
	return &ConflictError{Reasons: reasons}
}
