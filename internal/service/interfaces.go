package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/pomotodo/internal/domain"
	"github.com/alexanderramin/pomotodo/internal/importer"
)

// ErrAmbiguousRef is returned when an ID prefix matches more than one to-do.
var ErrAmbiguousRef = errors.New("reference matches more than one to-do")

type TodoService interface {
	Create(ctx context.Context, label string) (*domain.Todo, error)
	GetByID(ctx context.Context, id string) (*domain.Todo, error)
	// Resolve accepts "3", "#3" or a unique ID prefix.
	Resolve(ctx context.Context, ref string) (*domain.Todo, error)
	List(ctx context.Context, view domain.TodoView) ([]*domain.Todo, error)
	SetDone(ctx context.Context, id string, done bool) (*domain.Todo, error)
	Delete(ctx context.Context, id string) error
}

type FocusService interface {
	RecordCompletion(ctx context.Context, todoID string, startedAt time.Time, durationSec int) (*domain.PomodoroLog, error)
	ListByTodo(ctx context.Context, todoID string) ([]*domain.PomodoroLog, error)
	Stats(ctx context.Context, days int) (*domain.FocusStats, error)
}

// ImportResult holds the outcome of a to-do import.
type ImportResult struct {
	Todos     []*domain.Todo
	Completed int
}

type ImportService interface {
	ImportTodos(ctx context.Context, filePath string) (*ImportResult, error)
	ImportTodosFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}
