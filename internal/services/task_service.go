package services

import (
	"context"
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/repository/sqlite"
	"task-manager/internal/snapshot"
	"task-manager/internal/store"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	repo        sqlite.Repository
	mapper      *domain.TaskMapper
	logger      *log.Logger
	store       *store.TaskStore
	unsubscribe func()
	dirty       bool
}

// NewTaskService creates a TaskService with an empty store. Call Restore to
// load the saved state.
func NewTaskService(repo sqlite.Repository, logger *log.Logger) TaskService {
	s := &taskServiceImpl{
		repo:   repo,
		mapper: domain.NewTaskMapper(),
		logger: logger,
	}
	s.attach(store.New())
	return s
}

// attach makes st the current store and tracks its changes.
func (s *taskServiceImpl) attach(st *store.TaskStore) {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.store = st
	s.unsubscribe = st.Subscribe(func(change store.Change) {
		s.dirty = true
		s.logger.Debug("task changed", "kind", change.Kind, "id", change.Task.ID, "complete", change.Task.Complete)
	})
}

func (s *taskServiceImpl) Restore(ctx context.Context) error {
	saved, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return err
	}

	restored, err := store.Restore(s.mapper.RecordsFromDatabase(saved.Tasks), saved.NextID)
	if err != nil {
		s.logger.Warn("saved tasks rejected, starting with an empty list", "err", err, "next_id", restored.NextID())
	} else {
		s.logger.Debug("restored tasks", "count", restored.Len(), "next_id", restored.NextID())
	}

	s.attach(restored)
	s.dirty = false
	return nil
}

func (s *taskServiceImpl) Persist(ctx context.Context) error {
	if !s.dirty {
		return nil
	}

	records := s.store.Export()
	snap := &sqlite.Snapshot{
		Tasks:  s.mapper.RecordsToDatabase(records),
		NextID: s.store.NextID(),
	}
	if err := s.repo.SaveSnapshot(ctx, snap); err != nil {
		return err
	}

	s.logger.Debug("saved tasks", "count", len(records), "next_id", snap.NextID)
	s.dirty = false
	return nil
}

func (s *taskServiceImpl) Dirty() bool {
	return s.dirty
}

func (s *taskServiceImpl) AddTask(name string) (domain.Task, bool) {
	return s.store.Add(name)
}

func (s *taskServiceImpl) ToggleTask(id int64, complete bool) (domain.Task, error) {
	if !s.store.Toggle(id, complete) {
		return domain.Task{}, errors.NewNotFoundError("task", strconv.FormatInt(id, 10))
	}
	task, _ := s.store.Get(id)
	return task, nil
}

func (s *taskServiceImpl) RemoveTask(id int64) (domain.Task, error) {
	task, ok := s.store.Get(id)
	if !ok || !s.store.Remove(id) {
		return domain.Task{}, errors.NewNotFoundError("task", strconv.FormatInt(id, 10))
	}
	return task, nil
}

func (s *taskServiceImpl) ClearTasks() int {
	removed := 0
	for _, task := range s.store.Tasks() {
		if s.store.Remove(task.ID) {
			removed++
		}
	}
	return removed
}

func (s *taskServiceImpl) ListTasks() []domain.Task {
	return s.store.Tasks()
}

func (s *taskServiceImpl) Subscribe(fn func(store.Change)) func() {
	return s.store.Subscribe(fn)
}

func (s *taskServiceImpl) ExportSnapshot(w io.Writer, format snapshot.Format) error {
	return snapshot.Encode(w, s.store.Export(), format)
}

func (s *taskServiceImpl) ImportSnapshot(r io.Reader, format snapshot.Format, source string) (int, error) {
	records, err := snapshot.Decode(r, format)
	if err != nil {
		return 0, errors.NewSnapshotError(source, err)
	}

	// The imported list brings its own ids; new ones continue past both.
	imported, err := store.Restore(records, s.store.NextID())
	if err != nil {
		return 0, errors.NewSnapshotError(source, err)
	}

	s.attach(imported)
	s.dirty = true
	s.logger.Info("imported tasks", "source", source, "count", imported.Len())
	return imported.Len(), nil
}
