package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/pomotodo/internal/db"
	"github.com/alexanderramin/pomotodo/internal/domain"
)

const todoColumns = `id, seq, label, done, pomodoros, completed_at, created_at, updated_at`

// SQLiteTodoRepo implements TodoRepo using a SQLite database.
type SQLiteTodoRepo struct {
	db db.DBTX
}

// NewSQLiteTodoRepo creates a new SQLiteTodoRepo.
func NewSQLiteTodoRepo(conn db.DBTX) *SQLiteTodoRepo {
	return &SQLiteTodoRepo{db: conn}
}

func (r *SQLiteTodoRepo) Create(ctx context.Context, t *domain.Todo) error {
	query := `INSERT INTO todos (` + todoColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Seq,
		t.Label,
		boolToInt(t.Done),
		t.Pomodoros,
		nullableTimeToString(t.CompletedAt, time.RFC3339),
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting todo: %w", err)
	}
	return nil
}

func (r *SQLiteTodoRepo) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = ?`, id)
	return r.scanTodo(row)
}

func (r *SQLiteTodoRepo) GetBySeq(ctx context.Context, seq int) (*domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE seq = ?`, seq)
	return r.scanTodo(row)
}

func (r *SQLiteTodoRepo) FindByIDPrefix(ctx context.Context, prefix string) ([]*domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id LIKE ? ESCAPE '\' ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, escapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("finding todos by id prefix: %w", err)
	}
	defer rows.Close()
	return r.scanTodos(rows)
}

func (r *SQLiteTodoRepo) List(ctx context.Context, view domain.TodoView) ([]*domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos`
	var args []any
	switch view {
	case domain.ViewActive:
		query += ` WHERE done = ?`
		args = append(args, 0)
	case domain.ViewCompleted:
		query += ` WHERE done = ?`
		args = append(args, 1)
	}
	query += ` ORDER BY seq`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	defer rows.Close()
	return r.scanTodos(rows)
}

func (r *SQLiteTodoRepo) Update(ctx context.Context, t *domain.Todo) error {
	query := `UPDATE todos
		SET label = ?, done = ?, pomodoros = ?, completed_at = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Label,
		boolToInt(t.Done),
		t.Pomodoros,
		nullableTimeToString(t.CompletedAt, time.RFC3339),
		formatTime(t.UpdatedAt),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating todo: %w", err)
	}
	return requireAffected(res, "todo")
}

func (r *SQLiteTodoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting todo: %w", err)
	}
	return requireAffected(res, "todo")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteTodoRepo) scanTodo(row *sql.Row) (*domain.Todo, error) {
	t, err := scanTodoFields(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("todo: %w", ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}

func (r *SQLiteTodoRepo) scanTodos(rows *sql.Rows) ([]*domain.Todo, error) {
	var todos []*domain.Todo
	for rows.Next() {
		t, err := scanTodoFields(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating todos: %w", err)
	}
	return todos, nil
}

func scanTodoFields(s rowScanner) (*domain.Todo, error) {
	var t domain.Todo
	var done int
	var completedAt sql.NullString
	var createdAtStr, updatedAtStr string

	err := s.Scan(&t.ID, &t.Seq, &t.Label, &done, &t.Pomodoros, &completedAt, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning todo: %w", err)
	}

	t.Done = intToBool(done)
	t.CompletedAt = parseNullableTime(completedAt, time.RFC3339)
	if t.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &t, nil
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
