package domain

import "fmt"

// Task represents a to-do entry in the domain model.
// This is a pure domain model without database-specific concerns.
type Task struct {
	ID       int64
	Name     string
	Complete bool
}

// NewTask creates an incomplete Task with the given id and name.
func NewTask(id int64, name string) Task {
	return Task{
		ID:   id,
		Name: name,
	}
}

// WithComplete returns a copy of the task with its completion flag replaced.
func (t Task) WithComplete(complete bool) Task {
	t.Complete = complete
	return t
}

// String renders the task as a checklist line.
func (t Task) String() string {
	mark := " "
	if t.Complete {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %d %s", mark, t.ID, t.Name)
}
