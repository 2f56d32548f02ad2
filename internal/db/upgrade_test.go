package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A database created before the pomodoro counter and the sequence allocator
// existed keeps its rows and continues numbering after the highest seq.
func TestMigrate_UpgradeFromLegacySchema(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE todos (
		id           TEXT PRIMARY KEY,
		seq          INTEGER NOT NULL,
		label        TEXT NOT NULL,
		done         INTEGER NOT NULL DEFAULT 0,
		completed_at TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO todos (id, seq, label, created_at, updated_at) VALUES
		('a', 1, 'first', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z'),
		('b', 7, 'second', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var pomodoros int
	require.NoError(t, db.QueryRow(`SELECT pomodoros FROM todos WHERE id = 'b'`).Scan(&pomodoros))
	assert.Equal(t, 0, pomodoros, "new column gets its default")

	var next int
	require.NoError(t, db.QueryRow(`SELECT next_seq FROM todo_sequence WHERE id = 1`).Scan(&next))
	assert.Equal(t, 8, next)

	require.NoError(t, Migrate(db))
	require.NoError(t, db.QueryRow(`SELECT next_seq FROM todo_sequence WHERE id = 1`).Scan(&next))
	assert.Equal(t, 8, next, "re-running keeps the allocator where it was")
}
