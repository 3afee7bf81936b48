package store

import (
	"task-manager/internal/domain"
	"task-manager/internal/validation"
)

var (
	mapper            = domain.NewTaskMapper()
	snapshotValidator = validation.NewSnapshotValidator()
)

// Export returns the tasks as snapshot records in display order.
func (s *TaskStore) Export() []domain.Record {
	return mapper.ToRecordSlice(s.tasks)
}

// Import builds a store from snapshot records. The next id is one past the
// largest id in records, or 0 when records is empty.
//
// A snapshot with duplicate ids, negative ids or blank names is rejected as a
// whole: Import then returns an empty store together with a
// *validation.ValidationError describing every bad record.
func Import(records []domain.Record) (*TaskStore, error) {
	s := New()
	if err := snapshotValidator.ValidateRecords(records); err != nil {
		return s, err
	}

	s.tasks = mapper.FromRecordSlice(records)
	for _, task := range s.tasks {
		if task.ID >= s.nextID {
			s.nextID = task.ID + 1
		}
	}
	return s, nil
}

// Restore is Import for a saved session. nextID is the counter saved with
// the records; the store continues from it when it is ahead of the records,
// so ids removed in earlier sessions stay retired. When records are rejected
// the empty store still continues from nextID.
func Restore(records []domain.Record, nextID int64) (*TaskStore, error) {
	s, err := Import(records)
	if nextID > s.nextID {
		s.nextID = nextID
	}
	return s, err
}
