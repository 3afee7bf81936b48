package validation

import (
	"math"
	"strings"
)

// MaxTaskID is the largest id a store may issue. An id of math.MaxInt64
// would leave no value for the next one.
const MaxTaskID int64 = math.MaxInt64 - 1

// Validator provides common validation utilities
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidTaskID reports whether id could have been issued by a store.
// Ids are assigned from zero upward and stop at MaxTaskID.
func (v *Validator) IsValidTaskID(id int64) bool {
	return id >= 0 && id <= MaxTaskID
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}
