package testutil

import (
	"sync/atomic"
	"time"

	"github.com/alexanderramin/pomotodo/internal/domain"
	"github.com/google/uuid"
)

var testSeqCounter atomic.Int64

// Todo options
type TodoOption func(*domain.Todo)

func WithSeq(seq int) TodoOption {
	return func(t *domain.Todo) {
		t.Seq = seq
	}
}

func WithTodoID(id string) TodoOption {
	return func(t *domain.Todo) {
		t.ID = id
	}
}

func WithDone(at time.Time) TodoOption {
	return func(t *domain.Todo) {
		t.Done = true
		t.CompletedAt = &at
	}
}

func WithPomodoros(n int) TodoOption {
	return func(t *domain.Todo) {
		t.Pomodoros = n
	}
}

func WithCreatedAt(at time.Time) TodoOption {
	return func(t *domain.Todo) {
		t.CreatedAt = at
		t.UpdatedAt = at
	}
}

// NewTestTodo builds an open to-do with a fresh ID and a sequence number
// unique within the test binary.
func NewTestTodo(label string, opts ...TodoOption) *domain.Todo {
	now := time.Now().UTC().Truncate(time.Second)
	t := &domain.Todo{
		ID:        uuid.New().String(),
		Seq:       int(testSeqCounter.Add(1)),
		Label:     label,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// PomodoroLog options
type LogOption func(*domain.PomodoroLog)

func WithCompletedAt(at time.Time) LogOption {
	return func(l *domain.PomodoroLog) {
		l.CompletedAt = at
		l.StartedAt = at.Add(-time.Duration(l.DurationSec) * time.Second)
	}
}

func WithDurationSec(sec int) LogOption {
	return func(l *domain.PomodoroLog) {
		l.DurationSec = sec
		l.StartedAt = l.CompletedAt.Add(-time.Duration(sec) * time.Second)
	}
}

// NewTestPomodoroLog builds a finished 25 minute run for todoID that
// completed just now.
func NewTestPomodoroLog(todoID string, opts ...LogOption) *domain.PomodoroLog {
	now := time.Now().UTC().Truncate(time.Second)
	l := &domain.PomodoroLog{
		ID:          uuid.New().String(),
		TodoID:      todoID,
		DurationSec: 1500,
		StartedAt:   now.Add(-25 * time.Minute),
		CompletedAt: now,
		CreatedAt:   now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}
