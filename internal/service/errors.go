package service

import (
	"errors"
	"fmt"
)

// Service errors. The API layer maps these to HTTP status codes.
var (
	// ErrSessionNotFound indicates no live session has the requested ID,
	// either because it never existed or because it was ended.
	ErrSessionNotFound = errors.New("session not found")

	// ErrMissingDependency is returned by constructors given a nil
	// required collaborator.
	ErrMissingDependency = errors.New("missing required dependency")
)

// SessionServiceError wraps unexpected failures from the session service.
type SessionServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for SessionServiceError.
func (e *SessionServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("session service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("session service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *SessionServiceError) Unwrap() error {
	return e.Err
}

// NewSessionServiceError wraps err for operation. Sentinel errors from this
// package are returned unwrapped.
func NewSessionServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrSessionNotFound) {
		return ErrSessionNotFound
	}
	return &SessionServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
