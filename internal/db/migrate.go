package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillTodoSequence(db); err != nil {
		return fmt.Errorf("backfilling todo sequence allocator state: %w", err)
	}
	return nil
}

// migrateBackfillTodoSequence raises the allocator past every assigned seq,
// so databases created before the allocator existed keep issuing unique
// numbers.
func migrateBackfillTodoSequence(db *sql.DB) error {
	ctx := context.Background()
	query := `INSERT INTO todo_sequence (id, next_seq)
		SELECT 1, COALESCE(MAX(seq), 0) + 1 FROM todos
		WHERE true
		ON CONFLICT(id) DO UPDATE SET next_seq = MAX(todo_sequence.next_seq, excluded.next_seq)`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("upserting todo_sequence: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS todos (
		id           TEXT PRIMARY KEY,
		seq          INTEGER NOT NULL,
		label        TEXT NOT NULL CHECK(trim(label) <> ''),
		done         INTEGER NOT NULL DEFAULT 0,
		completed_at TEXT,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`ALTER TABLE todos ADD COLUMN pomodoros INTEGER NOT NULL DEFAULT 0`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_todos_seq ON todos(seq)`,
	`CREATE INDEX IF NOT EXISTS idx_todos_done ON todos(done)`,

	`CREATE TABLE IF NOT EXISTS todo_sequence (
		id       INTEGER PRIMARY KEY CHECK(id = 1),
		next_seq INTEGER NOT NULL CHECK(next_seq > 0)
	)`,

	`CREATE TABLE IF NOT EXISTS pomodoro_logs (
		id           TEXT PRIMARY KEY,
		todo_id      TEXT NOT NULL REFERENCES todos(id) ON DELETE CASCADE,
		started_at   TEXT NOT NULL,
		duration_sec INTEGER NOT NULL CHECK(duration_sec > 0),
		completed_at TEXT NOT NULL,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_pomodoro_logs_todo ON pomodoro_logs(todo_id)`,
	`CREATE INDEX IF NOT EXISTS idx_pomodoro_logs_completed ON pomodoro_logs(completed_at)`,
}
