package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/pomotodo/internal/db"
	"github.com/alexanderramin/pomotodo/internal/domain"
	"github.com/alexanderramin/pomotodo/internal/repository"
	"github.com/google/uuid"
)

type todoService struct {
	todos    repository.TodoRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTodoService(todos repository.TodoRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TodoService {
	return &todoService{
		todos:    todos,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *todoService) Create(ctx context.Context, label string) (todo *domain.Todo, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-todo",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	todo, err = domain.NewTodo(label, startedAt.Truncate(time.Second))
	if err != nil {
		return nil, err
	}
	todo.ID = uuid.New().String()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		seq, err := repository.NewSQLiteSequenceRepo(tx).NextTodoSeq(ctx)
		if err != nil {
			return err
		}
		todo.Seq = seq
		return repository.NewSQLiteTodoRepo(tx).Create(ctx, todo)
	})
	if err != nil {
		return nil, err
	}
	fields["seq"] = todo.Seq
	return todo, nil
}

func (s *todoService) GetByID(ctx context.Context, id string) (*domain.Todo, error) {
	return s.todos.GetByID(ctx, id)
}

func (s *todoService) Resolve(ctx context.Context, ref string) (*domain.Todo, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty reference: %w", repository.ErrNotFound)
	}

	if n, err := strconv.Atoi(strings.TrimPrefix(ref, "#")); err == nil && n > 0 {
		todo, err := s.todos.GetBySeq(ctx, n)
		if err != nil {
			return nil, fmt.Errorf("to-do #%d: %w", n, err)
		}
		return todo, nil
	}

	matches, err := s.todos.FindByIDPrefix(ctx, ref)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("to-do %q: %w", ref, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%q: %w (%d matches)", ref, ErrAmbiguousRef, len(matches))
	}
}

func (s *todoService) List(ctx context.Context, view domain.TodoView) ([]*domain.Todo, error) {
	return s.todos.List(ctx, view)
}

func (s *todoService) SetDone(ctx context.Context, id string, done bool) (todo *domain.Todo, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "set-done",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"todo_id": id, "done": done},
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTodos := repository.NewSQLiteTodoRepo(tx)
		t, err := txTodos.GetByID(ctx, id)
		if err != nil {
			return err
		}
		t.SetDone(done, startedAt.Truncate(time.Second))
		if err := txTodos.Update(ctx, t); err != nil {
			return err
		}
		todo = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "delete-todo",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"todo_id": id},
		})
	}()
	return s.todos.Delete(ctx, id)
}
