package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskValidator_ValidateTaskName(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name        string
		input       string
		expectError bool
	}{
		{"Plain name", "Buy milk", false},
		{"Symbols are allowed", "Email @bob re: #42", false},
		{"Padded name", "  Walk dog  ", false},
		{"Empty", "", true},
		{"Spaces", "   ", true},
		{"Tabs and newlines", "\t\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateTaskName(tt.input)
			if !tt.expectError {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "expected *ValidationError, got %T", err)
			assert.Equal(t, ErrorTypeRequired, validationErr.Errors[0].Type)
		})
	}
}

func TestTaskValidator_GetValidTaskName(t *testing.T) {
	validator := NewTaskValidator()

	name, err := validator.GetValidTaskName("  Walk dog ")
	require.NoError(t, err)
	assert.Equal(t, "Walk dog", name)

	_, err = validator.GetValidTaskName(" ")
	assert.IsType(t, &ValidationError{}, err)
}

func TestTaskValidator_ValidateTaskID(t *testing.T) {
	validator := NewTaskValidator()

	assert.NoError(t, validator.ValidateTaskID(0))
	assert.NoError(t, validator.ValidateTaskID(42))
	assert.Error(t, validator.ValidateTaskID(-1))
	assert.NoError(t, validator.ValidateTaskID(MaxTaskID))
	assert.Error(t, validator.ValidateTaskID(MaxTaskID+1))
}
