package migrations

import (
	"database/sql"
	"fmt"

	"task-manager/internal/logging"
)

func init() {
	RegisterGoMigration(2, Up_000002_add_store_state, Down_000002_add_store_state)
}

// Up_000002_add_store_state adds the single-row store_state table holding the
// next id to issue, seeded one past the largest stored id.
func Up_000002_add_store_state(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE IF NOT EXISTS store_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_id INTEGER NOT NULL CHECK (next_id >= 0)
	)`)
	if err != nil {
		return fmt.Errorf("failed to create store_state: %w", err)
	}

	if _, err := tx.Exec(`
	INSERT OR IGNORE INTO store_state (id, next_id)
	SELECT 1, COALESCE(MAX(id) + 1, 0) FROM tasks`); err != nil {
		return fmt.Errorf("failed to seed store_state: %w", err)
	}

	var nextID int64
	if err := tx.QueryRow("SELECT next_id FROM store_state WHERE id = 1").Scan(&nextID); err != nil {
		return fmt.Errorf("failed to read store_state: %w", err)
	}
	logging.Debugf("store_state seeded with next_id %d\n", nextID)
	return nil
}

func Down_000002_add_store_state(tx *sql.Tx) error {
	_, err := tx.Exec("DROP TABLE IF EXISTS store_state")
	return err
}
