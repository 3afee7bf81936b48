package sqlite

// Task is one row of the saved snapshot. Position keeps the display order.
type Task struct {
	Position int64
	ID       int64
	Name     string
	Complete bool
}

// Snapshot is the whole saved state: the task rows and the next id the
// store will issue.
type Snapshot struct {
	Tasks  []*Task
	NextID int64
}
