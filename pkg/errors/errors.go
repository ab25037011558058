package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents different types of errors in the system
type ErrorType string

const (
	// ErrorTypeValidation indicates malformed or missing input
	ErrorTypeValidation ErrorType = "VALIDATION"

	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"

	// ErrorTypeInvalidTransition indicates a state-machine guard violation
	ErrorTypeInvalidTransition ErrorType = "INVALID_TRANSITION"

	// ErrorTypeStoreUnavailable indicates a record-store I/O failure
	ErrorTypeStoreUnavailable ErrorType = "STORE_UNAVAILABLE"

	// ErrorTypeExternal indicates an error from an external service
	ErrorTypeExternal ErrorType = "EXTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error

	// CurrentStatus is set for invalid-transition errors so callers can see
	// which status blocked the transition.
	CurrentStatus string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.CurrentStatus != "" {
		return fmt.Sprintf("%s: %s (current status: %s)", e.Type, e.Message, e.CurrentStatus)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsType reports whether err carries the given error type.
func IsType(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

// NewValidationError creates a new validation error
func NewValidationError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewInvalidTransitionError creates an invalid transition error carrying the
// booking's current status for caller diagnostics.
func NewInvalidTransitionError(message, currentStatus string) *AppError {
	return &AppError{
		Type:          ErrorTypeInvalidTransition,
		Message:       message,
		CurrentStatus: currentStatus,
	}
}

// NewStoreUnavailableError creates a new store unavailable error
func NewStoreUnavailableError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeStoreUnavailable,
		Message: message,
		Err:     err,
	}
}

// NewExternalError creates a new external service error
func NewExternalError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeExternal,
		Message: message,
		Err:     err,
	}
}
