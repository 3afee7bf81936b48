package errors

import (
	"fmt"
)

// ErrorType classifies an AppError. The value doubles as the prefix of
// Error().
type ErrorType string

const (
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeInvalidInput ErrorType = "invalid_input"
	ErrorTypeSnapshot     ErrorType = "snapshot"
	ErrorTypeDatabase     ErrorType = "database"
	ErrorTypeTimeout      ErrorType = "timeout"
)

// userCaused reports whether errors of this type come from what the user
// typed or supplied rather than from the state bundle.
func (t ErrorType) userCaused() bool {
	switch t {
	case ErrorTypeNotFound, ErrorTypeInvalidInput, ErrorTypeSnapshot:
		return true
	}
	return false
}

// AppError is the structured error returned across package boundaries.
// Subject names what the error is about: a task id, a snapshot source or a
// storage operation.
type AppError struct {
	Type    ErrorType
	Code    string
	Message string
	Subject string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code.
func (e *AppError) Is(target error) bool {
	if appErr, ok := target.(*AppError); ok {
		return e.Type == appErr.Type && e.Code == appErr.Code
	}
	return false
}
