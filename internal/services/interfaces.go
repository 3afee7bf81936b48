package services

import (
	"context"
	"io"

	"task-manager/internal/domain"
	"task-manager/internal/snapshot"
	"task-manager/internal/store"
)

// TaskService runs one session against the task store: it restores the
// store from the state bundle, forwards mutations and persists the result.
type TaskService interface {
	// Restore replaces the current store with the one saved in the state
	// bundle, continuing from the saved next id. A bundle whose tasks fail
	// validation is logged and the session starts with an empty store that
	// still continues from the saved next id.
	Restore(ctx context.Context) error
	// Persist writes the current snapshot to the state bundle if anything
	// changed since the last Restore or Persist.
	Persist(ctx context.Context) error
	// Dirty reports whether there are unsaved changes.
	Dirty() bool

	// AddTask adds a task. It reports false for blank names.
	AddTask(name string) (domain.Task, bool)
	// ToggleTask sets a task's completion flag. Unknown ids return a
	// not_found AppError.
	ToggleTask(id int64, complete bool) (domain.Task, error)
	// RemoveTask deletes a task. Unknown ids return a not_found AppError.
	RemoveTask(id int64) (domain.Task, error)
	// ClearTasks removes every task and returns how many were removed.
	ClearTasks() int
	// ListTasks returns the tasks in display order.
	ListTasks() []domain.Task
	// Subscribe registers fn for change notifications on the current store.
	// Subscriptions do not survive Restore or ImportSnapshot.
	Subscribe(fn func(store.Change)) func()

	// ExportSnapshot writes the current snapshot to w.
	ExportSnapshot(w io.Writer, format snapshot.Format) error
	// ImportSnapshot replaces the current store with the snapshot read from
	// r. Ids issued afterwards continue past both the imported ids and the
	// ids already issued this session. On rejection the current store is
	// kept and a snapshot AppError is returned. source names the input in
	// errors and logs.
	ImportSnapshot(r io.Reader, format snapshot.Format, source string) (int, error)
}
