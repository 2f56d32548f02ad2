package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptyLabel is returned when a to-do label is blank after trimming.
var ErrEmptyLabel = errors.New("label must not be empty")

// Todo is one entry on the list.
type Todo struct {
	ID          string
	Seq         int
	Label       string
	Done        bool
	Pomodoros   int
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NormalizeLabel trims surrounding whitespace and rejects blank labels.
func NormalizeLabel(label string) (string, error) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return "", ErrEmptyLabel
	}
	return trimmed, nil
}

// NewTodo builds an open to-do with a normalized label. ID and Seq are
// assigned on creation by the service.
func NewTodo(label string, now time.Time) (*Todo, error) {
	l, err := NormalizeLabel(label)
	if err != nil {
		return nil, err
	}
	return &Todo{
		Label:     l,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetDone moves the to-do between the open and completed lists.
// CompletedAt is kept from the first completion until the item is reopened.
func (t *Todo) SetDone(done bool, now time.Time) {
	if t.Done == done {
		return
	}
	t.Done = done
	if done {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}
	t.UpdatedAt = now
}

// ApplyPomodoro counts one finished focus run.
func (t *Todo) ApplyPomodoro(now time.Time) {
	t.Pomodoros++
	t.UpdatedAt = now
}

// DisplayRef returns the short reference shown in listings, e.g. "#3".
func (t *Todo) DisplayRef() string {
	if t.Seq > 0 {
		return fmt.Sprintf("#%d", t.Seq)
	}
	if len(t.ID) >= 8 {
		return t.ID[:8]
	}
	return t.ID
}
