package migrations

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrations.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&count)
	require.NoError(t, err)
	return count > 0
}

func TestRunMigrations_FreshDatabase(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))

	assert.True(t, tableExists(t, db, "migrations"))
	assert.True(t, tableExists(t, db, "tasks"))
	assert.True(t, tableExists(t, db, "store_state"))

	applied, err := getAppliedMigrations(db)
	require.NoError(t, err)
	assert.True(t, applied[1])
	assert.True(t, applied[2])
}

func TestRunMigrations_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, RunMigrations(db))
	require.NoError(t, RunMigrations(db))

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestRunMigrations_DirtyState(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, createMigrationsTable(db))
	_, err := db.Exec("INSERT INTO migrations (version, dirty) VALUES (1, TRUE)")
	require.NoError(t, err)

	err = RunMigrations(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dirty state")
	assert.Contains(t, err.Error(), "failed migration(s): [1]")
	assert.False(t, tableExists(t, db, "tasks"))
}

func TestApplyMigration_FailureLeavesDirtyMark(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, createMigrationsTable(db))

	err := applyMigration(db, Migration{Version: 99, Up: "CREATE TABLE broken ("})
	require.Error(t, err)

	dirty, err := getDirtyMigrations(db)
	require.NoError(t, err)
	assert.Equal(t, []int{99}, dirty)
}

func TestLoadMigrations_Ordered(t *testing.T) {
	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.Len(t, migrations, 2)

	assert.Equal(t, 1, migrations[0].Version)
	assert.Contains(t, migrations[0].Up, "CREATE TABLE")
	assert.Contains(t, migrations[0].Down, "DROP TABLE")
	assert.Nil(t, migrations[0].UpFunc)

	assert.Equal(t, 2, migrations[1].Version)
	assert.NotNil(t, migrations[1].UpFunc)
}

func TestRegisterGoMigration_DuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		RegisterGoMigration(2, func(*sql.Tx) error { return nil }, nil)
	})
}

func TestExtractVersion(t *testing.T) {
	assert.Equal(t, 1, extractVersion("000001_create_tasks.up.sql"))
	assert.Equal(t, 12, extractVersion("000012_more.up.sql"))
	assert.Equal(t, 0, extractVersion("readme.sql"))
}

func storedNextID(t *testing.T, db *sql.DB) int64 {
	t.Helper()

	var nextID int64
	require.NoError(t, db.QueryRow("SELECT next_id FROM store_state WHERE id = 1").Scan(&nextID))
	return nextID
}

func TestAddStoreState_SeedsFromTasks(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, createMigrationsTable(db))

	migrations, err := loadMigrations()
	require.NoError(t, err)
	require.NoError(t, applyMigration(db, migrations[0]))

	for position, id := range []int64{3, 7, 1} {
		_, err := db.Exec("INSERT INTO tasks (position, id, name, complete) VALUES (?, ?, 'x', 0)", position, id)
		require.NoError(t, err)
	}

	require.NoError(t, RunMigrations(db))
	assert.Equal(t, int64(8), storedNextID(t, db))
}

func TestAddStoreState_EmptyTable(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(db))

	assert.True(t, tableExists(t, db, "store_state"))
	assert.Equal(t, int64(0), storedNextID(t, db))
}

func TestAddStoreState_SingleRow(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(db))

	_, err := db.Exec("INSERT INTO store_state (id, next_id) VALUES (2, 5)")
	assert.Error(t, err)

	_, err = db.Exec("UPDATE store_state SET next_id = -1 WHERE id = 1")
	assert.Error(t, err)
}

func TestAddStoreState_Down(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, RunMigrations(db))

	tx, err := db.Begin()
	require.NoError(t, err)
	require.NoError(t, Down_000002_add_store_state(tx))
	require.NoError(t, tx.Commit())

	assert.False(t, tableExists(t, db, "store_state"))
}
