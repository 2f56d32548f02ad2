package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/pomotodo/internal/domain"
)

// ErrNotFound is wrapped by every repository lookup that matches no row.
var ErrNotFound = errors.New("not found")

type TodoRepo interface {
	Create(ctx context.Context, t *domain.Todo) error
	GetByID(ctx context.Context, id string) (*domain.Todo, error)
	GetBySeq(ctx context.Context, seq int) (*domain.Todo, error)
	FindByIDPrefix(ctx context.Context, prefix string) ([]*domain.Todo, error)
	List(ctx context.Context, view domain.TodoView) ([]*domain.Todo, error)
	Update(ctx context.Context, t *domain.Todo) error
	Delete(ctx context.Context, id string) error
}

type SequenceRepo interface {
	NextTodoSeq(ctx context.Context) (int, error)
}

type PomodoroRepo interface {
	Create(ctx context.Context, l *domain.PomodoroLog) error
	GetByID(ctx context.Context, id string) (*domain.PomodoroLog, error)
	ListByTodo(ctx context.Context, todoID string) ([]*domain.PomodoroLog, error)
	ListSince(ctx context.Context, since time.Time) ([]*domain.PomodoroLog, error)
	SummarizeSince(ctx context.Context, since time.Time) ([]domain.FocusSummary, error)
	Delete(ctx context.Context, id string) error
}
