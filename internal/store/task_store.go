// Package store holds the in-memory task list and its transition rules.
package store

import (
	"task-manager/internal/domain"
	"task-manager/internal/validation"
)

// ChangeKind identifies which mutation produced a Change.
type ChangeKind string

const (
	ChangeAdded   ChangeKind = "added"
	ChangeToggled ChangeKind = "toggled"
	ChangeRemoved ChangeKind = "removed"
)

// Change describes a successful mutation. Task is the task as it is after
// the mutation, or as it was just before removal.
type Change struct {
	Kind ChangeKind
	Task domain.Task
}

// TaskStore owns an ordered list of tasks and the next id to issue.
// It is not safe for concurrent use; a store belongs to one session.
type TaskStore struct {
	tasks         []domain.Task
	nextID        int64
	taskValidator *validation.TaskValidator
	subscribers   map[int]func(Change)
	nextSubID     int
}

// New creates an empty store whose first task gets id 0.
func New() *TaskStore {
	return &TaskStore{
		tasks:         []domain.Task{},
		taskValidator: validation.NewTaskValidator(),
		subscribers:   make(map[int]func(Change)),
	}
}

// Add appends a task named after the trimmed name. A blank name is
// ignored and Add reports false, as does a store that has already issued
// validation.MaxTaskID.
func (s *TaskStore) Add(name string) (domain.Task, bool) {
	trimmed, err := s.taskValidator.GetValidTaskName(name)
	if err != nil {
		return domain.Task{}, false
	}
	if s.nextID > validation.MaxTaskID {
		return domain.Task{}, false
	}

	task := domain.NewTask(s.nextID, trimmed)
	s.tasks = append(s.tasks, task)
	s.nextID++

	s.notify(Change{Kind: ChangeAdded, Task: task})
	return task, true
}

// Toggle sets the completion flag of the task with the given id. It
// reports false when no such task exists.
func (s *TaskStore) Toggle(id int64, complete bool) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	s.tasks[i] = s.tasks[i].WithComplete(complete)
	s.notify(Change{Kind: ChangeToggled, Task: s.tasks[i]})
	return true
}

// Remove deletes the task with the given id. It reports false when no such
// task exists. Removed ids are never issued again.
func (s *TaskStore) Remove(id int64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}

	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	s.notify(Change{Kind: ChangeRemoved, Task: removed})
	return true
}

// Get returns the task with the given id.
func (s *TaskStore) Get(id int64) (domain.Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.Task{}, false
	}
	return s.tasks[i], true
}

// Tasks returns a copy of the tasks in display order.
func (s *TaskStore) Tasks() []domain.Task {
	tasks := make([]domain.Task, len(s.tasks))
	copy(tasks, s.tasks)
	return tasks
}

// Len returns the number of tasks.
func (s *TaskStore) Len() int {
	return len(s.tasks)
}

// NextID returns the id the next successful Add will use.
func (s *TaskStore) NextID() int64 {
	return s.nextID
}

// Subscribe registers fn to be called after every successful mutation and
// returns a function that removes the registration.
func (s *TaskStore) Subscribe(fn func(Change)) func() {
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		delete(s.subscribers, id)
	}
}

func (s *TaskStore) notify(change Change) {
	for _, fn := range s.subscribers {
		fn(change)
	}
}

func (s *TaskStore) indexOf(id int64) int {
	for i, task := range s.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}
