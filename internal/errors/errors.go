package errors

import (
	"errors"
	"fmt"
	"time"
)

// NewNotFoundError reports an id that names no task.
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Subject: identifier,
	}
}

// NewInvalidInputError reports a malformed command argument.
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Code:    "INVALID_INPUT",
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Subject: fmt.Sprint(value),
	}
}

// NewSnapshotError reports a snapshot that could not be decoded or was
// rejected on import. source names where the snapshot came from.
func NewSnapshotError(source string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeSnapshot,
		Code:    "SNAPSHOT_REJECTED",
		Message: fmt.Sprintf("snapshot rejected: %s", source),
		Subject: source,
		Cause:   cause,
	}
}

// NewDatabaseError reports a failed operation on the state bundle.
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Code:    "DATABASE_ERROR",
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Subject: operation,
		Cause:   cause,
	}
}

// NewTimeoutError reports a state bundle operation that ran past timeout.
func NewTimeoutError(operation string, timeout time.Duration) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Code:    "TIMEOUT",
		Message: fmt.Sprintf("operation timed out after %s: %s", timeout, operation),
		Subject: operation,
	}
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType reports whether err's chain holds an AppError of errorType.
func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Type == errorType
}

// GetUserMessage returns the text shown to the user for err. Storage
// failures get a generic message; the details go to the log.
func GetUserMessage(err error) string {
	appErr, ok := AsAppError(err)
	if !ok {
		return err.Error()
	}

	switch {
	case appErr.Type == ErrorTypeSnapshot && appErr.Cause != nil:
		return fmt.Sprintf("%s (%v)", appErr.Message, appErr.Cause)
	case appErr.Type.userCaused():
		return appErr.Message
	case appErr.Type == ErrorTypeTimeout:
		return "The operation timed out. Please try again."
	default:
		return "A database error occurred. Please try again."
	}
}

// GetErrorCode returns the code of the AppError in err's chain, or
// UNKNOWN_ERROR.
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError reports whether err is a structured failure worth logging.
// Errors the user caused are already shown to them and are not logged, nor
// are errors without an AppError in their chain.
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && !appErr.Type.userCaused()
}
