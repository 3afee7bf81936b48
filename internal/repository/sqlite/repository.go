package sqlite

import (
	"context"
	"database/sql"
	"time"

	"task-manager/internal/config"
	"task-manager/internal/errors"
	"task-manager/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository stores the last saved snapshot between sessions.
type Repository interface {
	// SaveSnapshot replaces the stored snapshot with snap, tasks in order.
	SaveSnapshot(ctx context.Context, snap *Snapshot) error
	// LoadSnapshot returns the stored snapshot with tasks ordered by
	// position. An empty bundle yields no tasks and a next id of 0.
	LoadSnapshot(ctx context.Context) (*Snapshot, error)

	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
	writeTimeout time.Duration
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// One connection keeps ":memory:" databases alive and shared.
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// NewWithConfig creates a repository that applies the configured query and
// write timeouts to every call.
func NewWithConfig(dbPath string, cfg config.DatabaseConfig) (*SQLiteRepository, error) {
	repo, err := New(dbPath)
	if err != nil {
		return nil, err
	}
	repo.queryTimeout = cfg.QueryTimeout
	repo.writeTimeout = cfg.WriteTimeout
	return repo, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// SaveSnapshot replaces all stored rows and the next id inside a single
// transaction.
func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, snap *Snapshot) error {
	ctx, cancel := withTimeout(ctx, r.writeTimeout)
	defer cancel()

	err := WithTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (position, id, name, complete)
		VALUES (?, ?, ?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, task := range snap.Tasks {
			if _, err := stmt.ExecContext(ctx, task.Position, task.ID, task.Name, task.Complete); err != nil {
				return err
			}
		}

		_, err = tx.ExecContext(ctx, `
		INSERT INTO store_state (id, next_id) VALUES (1, ?)
		ON CONFLICT (id) DO UPDATE SET next_id = excluded.next_id`, snap.NextID)
		return err
	})
	if err != nil {
		return HandleContextError("save snapshot", r.writeTimeout, err)
	}
	return nil
}

// LoadSnapshot returns all stored rows ordered by position together with the
// stored next id.
func (r *SQLiteRepository) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	ctx, cancel := withTimeout(ctx, r.queryTimeout)
	defer cancel()

	query := `
	SELECT position, id, name, complete
	FROM tasks
	ORDER BY position ASC`

	tasks, err := QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
	if err != nil {
		if ctx.Err() != nil {
			return nil, HandleContextError("load snapshot", r.queryTimeout, ctx.Err())
		}
		return nil, err
	}

	snap := &Snapshot{Tasks: tasks}
	err = r.db.QueryRowContext(ctx, `SELECT next_id FROM store_state WHERE id = 1`).Scan(&snap.NextID)
	if err != nil && err != sql.ErrNoRows {
		return nil, HandleContextError("load next id", r.queryTimeout, err)
	}
	return snap, nil
}
