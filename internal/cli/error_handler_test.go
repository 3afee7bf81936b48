package cli

import (
	"errors"
	"testing"
	"time"

	apperrors "task-manager/internal/errors"
	"task-manager/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Not found error",
			operation: "complete task",
			err:       apperrors.NewNotFoundError("task", "3"),
			expected:  "failed to complete task: task not found: 3",
		},
		{
			name:      "Database error",
			operation: "save tasks",
			err:       apperrors.NewDatabaseError("insert", errors.New("disk full")),
			expected:  "failed to save tasks: A database error occurred. Please try again.",
		},
		{
			name:      "Timeout error",
			operation: "restore tasks",
			err:       apperrors.NewTimeoutError("load snapshot", time.Second),
			expected:  "failed to restore tasks: The operation timed out. Please try again.",
		},
		{
			name:      "Snapshot error",
			operation: "import tasks",
			err:       apperrors.NewSnapshotError("tasks.json", errors.New("bad shape")),
			expected:  "failed to import tasks: snapshot rejected: tasks.json (bad shape)",
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       errors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := eh.Handle(tt.operation, tt.err)
			if result.Error() != tt.expected {
				t.Errorf("ErrorHandler.Handle() = %v, want %v", result.Error(), tt.expected)
			}
		})
	}
}

func TestErrorHandler_HandleValidationError(t *testing.T) {
	eh := NewErrorHandler()

	verr := validation.NewValidationError()
	verr.AddRequiredError("name")

	result := eh.Handle("add task", verr)
	if result.Error() != "failed to add task: "+verr.GetUserFriendlyMessage() {
		t.Errorf("ErrorHandler.Handle() = %v", result)
	}

	simple := eh.HandleSimple(verr)
	if simple.Error() != verr.GetUserFriendlyMessage() {
		t.Errorf("ErrorHandler.HandleSimple() = %v", simple)
	}
}

func TestErrorHandler_HandleSimple(t *testing.T) {
	eh := NewErrorHandler()

	if got := eh.HandleSimple(apperrors.NewNotFoundError("task", "1")).Error(); got != "task not found: 1" {
		t.Errorf("HandleSimple() = %q", got)
	}

	plain := errors.New("plain")
	if got := eh.HandleSimple(plain); got != plain {
		t.Errorf("HandleSimple() should return unknown errors unchanged, got %v", got)
	}
}

func TestErrorHandler_KeepsCause(t *testing.T) {
	eh := NewErrorHandler()
	cause := apperrors.NewDatabaseError("insert", errors.New("disk full"))

	handled := eh.Handle("save tasks", cause)
	if !errors.Is(handled, cause) {
		t.Error("Handle() should keep the original error in the chain")
	}
	if !apperrors.ShouldLogError(handled) {
		t.Error("a handled database error should still be logged")
	}
	if code := apperrors.GetErrorCode(handled); code != "DATABASE_ERROR" {
		t.Errorf("GetErrorCode() = %q", code)
	}

	simple := eh.HandleSimple(apperrors.NewNotFoundError("task", "1"))
	if !apperrors.IsErrorType(simple, apperrors.ErrorTypeNotFound) {
		t.Error("HandleSimple() should keep the original error in the chain")
	}

	plain := errors.New("plain")
	if !errors.Is(eh.Handle("process", plain), plain) {
		t.Error("Handle() should wrap unknown errors")
	}
}
