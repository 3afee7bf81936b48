package domain

import (
	"task-manager/internal/repository/sqlite"
)

// TaskMapper handles conversion between domain Tasks, snapshot Records and
// database rows.
type TaskMapper struct{}

// NewTaskMapper creates a new TaskMapper instance.
func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// ToRecord converts a domain Task to a snapshot Record.
func (m *TaskMapper) ToRecord(task Task) Record {
	return Record{
		ID:       task.ID,
		Name:     task.Name,
		Complete: task.Complete,
	}
}

// FromRecord converts a snapshot Record to a domain Task.
func (m *TaskMapper) FromRecord(record Record) Task {
	return Task{
		ID:       record.ID,
		Name:     record.Name,
		Complete: record.Complete,
	}
}

// ToRecordSlice converts domain Tasks to snapshot Records, preserving order.
func (m *TaskMapper) ToRecordSlice(tasks []Task) []Record {
	records := make([]Record, len(tasks))
	for i, task := range tasks {
		records[i] = m.ToRecord(task)
	}
	return records
}

// FromRecordSlice converts snapshot Records to domain Tasks, preserving order.
func (m *TaskMapper) FromRecordSlice(records []Record) []Task {
	tasks := make([]Task, len(records))
	for i, record := range records {
		tasks[i] = m.FromRecord(record)
	}
	return tasks
}

// RecordsToDatabase converts snapshot Records to database rows. The row
// position is the record's index in the snapshot.
func (m *TaskMapper) RecordsToDatabase(records []Record) []*sqlite.Task {
	rows := make([]*sqlite.Task, len(records))
	for i, record := range records {
		rows[i] = &sqlite.Task{
			Position: int64(i),
			ID:       record.ID,
			Name:     record.Name,
			Complete: record.Complete,
		}
	}
	return rows
}

// RecordsFromDatabase converts database rows back to snapshot Records.
// Rows are expected in position order.
func (m *TaskMapper) RecordsFromDatabase(rows []*sqlite.Task) []Record {
	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = Record{
			ID:       row.ID,
			Name:     row.Name,
			Complete: row.Complete,
		}
	}
	return records
}
