package cli

import (
	"fmt"

	"task-manager/internal/errors"
	"task-manager/internal/validation"
)

// ErrorHandler turns handler errors into the messages printed to the user.
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// commandError is a user-facing message that keeps the original error in
// its chain, so RootCommand.Execute can still classify it.
type commandError struct {
	message string
	cause   error
}

func (e *commandError) Error() string { return e.message }

func (e *commandError) Unwrap() error { return e.cause }

// Handle prefixes the user message for err with the failed operation.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if message, ok := userMessage(err); ok {
		return &commandError{message: fmt.Sprintf("failed to %s: %s", operation, message), cause: err}
	}
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple returns the user message for err. Errors with no user
// message are returned unchanged.
func (eh *ErrorHandler) HandleSimple(err error) error {
	if message, ok := userMessage(err); ok {
		return &commandError{message: message, cause: err}
	}
	return err
}

func userMessage(err error) (string, bool) {
	if validationErr, ok := err.(*validation.ValidationError); ok {
		return validationErr.GetUserFriendlyMessage(), true
	}
	if _, ok := errors.AsAppError(err); ok {
		return errors.GetUserMessage(err), true
	}
	return "", false
}
