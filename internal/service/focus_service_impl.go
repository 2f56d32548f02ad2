package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pomotodo/internal/db"
	"github.com/alexanderramin/pomotodo/internal/domain"
	"github.com/alexanderramin/pomotodo/internal/repository"
	"github.com/google/uuid"
)

// DefaultStatsDays is the window used when Stats is asked for zero days.
const DefaultStatsDays = 7

type focusService struct {
	logs     repository.PomodoroRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewFocusService(logs repository.PomodoroRepo, uow db.UnitOfWork, observers ...UseCaseObserver) FocusService {
	return &focusService{
		logs:     logs,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// RecordCompletion stores a finished countdown and bumps the to-do's
// pomodoro counter in the same transaction.
func (s *focusService) RecordCompletion(ctx context.Context, todoID string, startedAt time.Time, durationSec int) (log *domain.PomodoroLog, err error) {
	begun := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "record-pomodoro",
			StartedAt: begun,
			Duration:  time.Since(begun),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"todo_id": todoID, "duration_sec": durationSec},
		})
	}()

	if durationSec <= 0 {
		return nil, fmt.Errorf("recording pomodoro: duration %ds must be positive", durationSec)
	}
	now := begun.Truncate(time.Second)
	if startedAt.IsZero() {
		startedAt = now.Add(-time.Duration(durationSec) * time.Second)
	}
	log = &domain.PomodoroLog{
		ID:          uuid.New().String(),
		TodoID:      todoID,
		StartedAt:   startedAt.UTC(),
		DurationSec: durationSec,
		CompletedAt: now,
		CreatedAt:   now,
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTodos := repository.NewSQLiteTodoRepo(tx)
		txLogs := repository.NewSQLitePomodoroRepo(tx)

		todo, err := txTodos.GetByID(ctx, todoID)
		if err != nil {
			return err
		}
		if err := txLogs.Create(ctx, log); err != nil {
			return err
		}
		todo.ApplyPomodoro(now)
		return txTodos.Update(ctx, todo)
	})
	if err != nil {
		return nil, err
	}
	return log, nil
}

func (s *focusService) ListByTodo(ctx context.Context, todoID string) ([]*domain.PomodoroLog, error) {
	return s.logs.ListByTodo(ctx, todoID)
}

// Stats totals the pomodoros completed in the last days days.
func (s *focusService) Stats(ctx context.Context, days int) (*domain.FocusStats, error) {
	if days <= 0 {
		days = DefaultStatsDays
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	byTodo, err := s.logs.SummarizeSince(ctx, since)
	if err != nil {
		return nil, err
	}
	stats := &domain.FocusStats{Days: days, ByTodo: byTodo}
	for _, row := range byTodo {
		stats.Sessions += row.Sessions
		stats.TotalSec += row.TotalSec
	}
	return stats, nil
}
