package validation

import (
	"fmt"

	"task-manager/internal/domain"
)

// SnapshotValidator checks that a list of snapshot records can be restored
// without breaking store invariants.
type SnapshotValidator struct {
	taskValidator *TaskValidator
}

// NewSnapshotValidator creates a new snapshot validator
func NewSnapshotValidator() *SnapshotValidator {
	return &SnapshotValidator{
		taskValidator: NewTaskValidator(),
	}
}

// ValidateRecords reports every record with a blank name or an id outside
// 0..MaxTaskID, and every id that appears more than once. It returns nil
// for a valid snapshot.
func (sv *SnapshotValidator) ValidateRecords(records []domain.Record) error {
	validationError := NewValidationError()
	seen := make(map[int64]int, len(records))

	for i, record := range records {
		if err := sv.taskValidator.ValidateTaskID(record.ID); err != nil {
			validationError.AddInvalidValueError(recordField(i, "id"), record.ID, idRangeReason(record.ID))
		}
		if err := sv.taskValidator.ValidateTaskName(record.Name); err != nil {
			validationError.AddRequiredError(recordField(i, "name"))
		}
		if first, dup := seen[record.ID]; dup {
			validationError.AddDuplicateError(recordField(i, "id"), record.ID, recordField(first, "id"))
			continue
		}
		seen[record.ID] = i
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

func recordField(index int, field string) string {
	return fmt.Sprintf("records[%d].%s", index, field)
}
