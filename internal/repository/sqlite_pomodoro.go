package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/pomotodo/internal/db"
	"github.com/alexanderramin/pomotodo/internal/domain"
)

// SQLitePomodoroRepo implements PomodoroRepo using a SQLite database.
type SQLitePomodoroRepo struct {
	db db.DBTX
}

// NewSQLitePomodoroRepo creates a new SQLitePomodoroRepo.
func NewSQLitePomodoroRepo(conn db.DBTX) *SQLitePomodoroRepo {
	return &SQLitePomodoroRepo{db: conn}
}

func (r *SQLitePomodoroRepo) Create(ctx context.Context, l *domain.PomodoroLog) error {
	query := `INSERT INTO pomodoro_logs (id, todo_id, started_at, duration_sec, completed_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.TodoID,
		formatTime(l.StartedAt),
		l.DurationSec,
		formatTime(l.CompletedAt),
		formatTime(l.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting pomodoro log: %w", err)
	}
	return nil
}

func (r *SQLitePomodoroRepo) GetByID(ctx context.Context, id string) (*domain.PomodoroLog, error) {
	query := `SELECT id, todo_id, started_at, duration_sec, completed_at, created_at
		FROM pomodoro_logs WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var l domain.PomodoroLog
	var startedAt, completedAt, createdAt string
	err := row.Scan(&l.ID, &l.TodoID, &startedAt, &l.DurationSec, &completedAt, &createdAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("pomodoro log: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning pomodoro log: %w", err)
	}
	return populateLog(&l, startedAt, completedAt, createdAt)
}

func (r *SQLitePomodoroRepo) ListByTodo(ctx context.Context, todoID string) ([]*domain.PomodoroLog, error) {
	query := `SELECT id, todo_id, started_at, duration_sec, completed_at, created_at
		FROM pomodoro_logs WHERE todo_id = ? ORDER BY completed_at`
	rows, err := r.db.QueryContext(ctx, query, todoID)
	if err != nil {
		return nil, fmt.Errorf("listing pomodoro logs by todo: %w", err)
	}
	defer rows.Close()
	return scanLogs(rows)
}

func (r *SQLitePomodoroRepo) ListSince(ctx context.Context, since time.Time) ([]*domain.PomodoroLog, error) {
	query := `SELECT id, todo_id, started_at, duration_sec, completed_at, created_at
		FROM pomodoro_logs WHERE completed_at >= ? ORDER BY completed_at DESC`
	rows, err := r.db.QueryContext(ctx, query, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("listing recent pomodoro logs: %w", err)
	}
	defer rows.Close()
	return scanLogs(rows)
}

// SummarizeSince groups logs completed at or after since by to-do, most
// sessions first.
func (r *SQLitePomodoroRepo) SummarizeSince(ctx context.Context, since time.Time) ([]domain.FocusSummary, error) {
	query := `SELECT t.id, t.seq, t.label, COUNT(*), COALESCE(SUM(l.duration_sec), 0)
		FROM pomodoro_logs l
		JOIN todos t ON t.id = l.todo_id
		WHERE l.completed_at >= ?
		GROUP BY t.id, t.seq, t.label
		ORDER BY COUNT(*) DESC, t.seq`
	rows, err := r.db.QueryContext(ctx, query, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("summarizing pomodoro logs: %w", err)
	}
	defer rows.Close()

	var out []domain.FocusSummary
	for rows.Next() {
		var s domain.FocusSummary
		if err := rows.Scan(&s.TodoID, &s.Seq, &s.Label, &s.Sessions, &s.TotalSec); err != nil {
			return nil, fmt.Errorf("scanning focus summary: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating focus summaries: %w", err)
	}
	return out, nil
}

func (r *SQLitePomodoroRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pomodoro_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting pomodoro log: %w", err)
	}
	return requireAffected(res, "pomodoro log")
}

func scanLogs(rows *sql.Rows) ([]*domain.PomodoroLog, error) {
	var logs []*domain.PomodoroLog
	for rows.Next() {
		var l domain.PomodoroLog
		var startedAt, completedAt, createdAt string
		if err := rows.Scan(&l.ID, &l.TodoID, &startedAt, &l.DurationSec, &completedAt, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning pomodoro log row: %w", err)
		}
		parsed, err := populateLog(&l, startedAt, completedAt, createdAt)
		if err != nil {
			return nil, err
		}
		logs = append(logs, parsed)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pomodoro logs: %w", err)
	}
	return logs, nil
}

// populateLog fills in parsed timestamps after scanning raw strings.
func populateLog(l *domain.PomodoroLog, startedAt, completedAt, createdAt string) (*domain.PomodoroLog, error) {
	var err error
	if l.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if l.CompletedAt, err = time.Parse(time.RFC3339, completedAt); err != nil {
		return nil, fmt.Errorf("parsing completed_at: %w", err)
	}
	if l.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return l, nil
}
