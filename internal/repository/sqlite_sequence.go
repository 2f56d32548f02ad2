package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pomotodo/internal/db"
)

// SQLiteSequenceRepo allocates to-do sequence numbers from the
// todo_sequence table.
type SQLiteSequenceRepo struct {
	db db.DBTX
}

// NewSQLiteSequenceRepo creates a new SQLiteSequenceRepo.
func NewSQLiteSequenceRepo(conn db.DBTX) *SQLiteSequenceRepo {
	return &SQLiteSequenceRepo{db: conn}
}

// NextTodoSeq returns the next unused sequence number. Numbers are never
// reused after deletion.
func (r *SQLiteSequenceRepo) NextTodoSeq(ctx context.Context) (int, error) {
	seedQuery := `INSERT OR IGNORE INTO todo_sequence (id, next_seq)
		SELECT 1, COALESCE(MAX(seq), 0) + 1 FROM todos`
	if _, err := r.db.ExecContext(ctx, seedQuery); err != nil {
		return 0, fmt.Errorf("seeding todo sequence: %w", err)
	}

	var next int
	allocQuery := `UPDATE todo_sequence
		SET next_seq = next_seq + 1
		WHERE id = 1
		RETURNING next_seq - 1`
	if err := r.db.QueryRowContext(ctx, allocQuery).Scan(&next); err != nil {
		return 0, fmt.Errorf("allocating next todo seq: %w", err)
	}
	return next, nil
}
