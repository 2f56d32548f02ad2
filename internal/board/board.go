// Package board keeps the in-memory list of to-dos shown by the UI. Each
// entry owns exactly one countdown timer whose lifetime ends with the entry.
package board

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/pomotodo/internal/domain"
	"github.com/alexanderramin/pomotodo/internal/timer"
)

var (
	// ErrUnknownItem is returned for an ID that is not on the board.
	ErrUnknownItem = errors.New("item not on board")
	// ErrDuplicateItem is returned when adding an ID twice.
	ErrDuplicateItem = errors.New("item already on board")
	// ErrItemCompleted is returned for timer actions on a completed item.
	ErrItemCompleted = errors.New("item is completed")
)

// Entry pairs a to-do with its timer.
type Entry struct {
	Todo  *domain.Todo
	Timer *timer.TaskTimer
	// StartedAt is when the current run was first started; zero when idle.
	StartedAt time.Time
}

// Option configures a Board.
type Option func(*Board)

// WithOnComplete registers fn to run when any entry's countdown finishes.
func WithOnComplete(fn func(*Entry)) Option {
	return func(b *Board) { b.onComplete = fn }
}

// WithClock overrides the time source used for StartedAt.
func WithClock(now func() time.Time) Option {
	return func(b *Board) { b.now = now }
}

// Board is the arena of entries. It is not safe for concurrent use; the
// host calls it from the same loop its scheduler fires on.
type Board struct {
	sched      timer.Scheduler
	duration   int
	entries    map[string]*Entry
	onComplete func(*Entry)
	now        func() time.Time
}

// New creates an empty board whose timers run for durationSeconds.
func New(sched timer.Scheduler, durationSeconds int, opts ...Option) (*Board, error) {
	if sched == nil || durationSeconds <= 0 {
		return nil, fmt.Errorf("board: %w", timer.ErrInvalidDuration)
	}
	b := &Board{
		sched:    sched,
		duration: durationSeconds,
		entries:  make(map[string]*Entry),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Duration returns the countdown length used for new entries.
func (b *Board) Duration() int { return b.duration }

// Add places a to-do on the board with a fresh idle timer.
func (b *Board) Add(todo *domain.Todo) (*Entry, error) {
	if _, ok := b.entries[todo.ID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateItem, todo.ID)
	}
	e := &Entry{Todo: todo}
	t, err := timer.New(b.duration, b.sched, timer.WithOnComplete(func() {
		if b.onComplete != nil {
			b.onComplete(e)
		}
	}))
	if err != nil {
		return nil, err
	}
	e.Timer = t
	b.entries[todo.ID] = e
	return e, nil
}

// Get returns the entry for id.
func (b *Board) Get(id string) (*Entry, bool) {
	e, ok := b.entries[id]
	return e, ok
}

// Len returns the number of entries.
func (b *Board) Len() int { return len(b.entries) }

// Active returns open entries ordered by sequence.
func (b *Board) Active() []*Entry { return b.list(domain.ViewActive) }

// Completed returns done entries ordered by sequence.
func (b *Board) Completed() []*Entry { return b.list(domain.ViewCompleted) }

// List returns the entries in view ordered by sequence.
func (b *Board) List(view domain.TodoView) []*Entry { return b.list(view) }

func (b *Board) list(view domain.TodoView) []*Entry {
	out := make([]*Entry, 0, len(b.entries))
	for _, e := range b.entries {
		if view.Includes(e.Todo.Done) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Todo.Seq != out[j].Todo.Seq {
			return out[i].Todo.Seq < out[j].Todo.Seq
		}
		return out[i].Todo.ID < out[j].Todo.ID
	})
	return out
}

// StartPause starts an idle or paused timer and pauses a running one.
// Starting a timer that already reached zero is a silent no-op.
func (b *Board) StartPause(id string) (timer.State, error) {
	e, err := b.open(id)
	if err != nil {
		return 0, err
	}
	if e.Timer.State() == timer.Running {
		e.Timer.Pause()
		return e.Timer.State(), nil
	}
	wasIdle := e.Timer.State() == timer.Idle
	if err := e.Timer.Start(); err == nil && wasIdle {
		e.StartedAt = b.now()
	}
	return e.Timer.State(), nil
}

// ResetTimer rewinds an open entry's timer.
func (b *Board) ResetTimer(id string) error {
	e, err := b.open(id)
	if err != nil {
		return err
	}
	e.Timer.Reset()
	e.StartedAt = time.Time{}
	return nil
}

// SetDone stops and rewinds the entry's timer, then moves it between the
// open and completed lists.
func (b *Board) SetDone(id string, done bool, now time.Time) (*Entry, error) {
	e, ok := b.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	e.Timer.Reset()
	e.StartedAt = time.Time{}
	e.Todo.SetDone(done, now)
	return e, nil
}

// Remove destroys the entry's timer and drops the entry.
func (b *Board) Remove(id string) (*Entry, error) {
	e, ok := b.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	e.Timer.Destroy()
	delete(b.entries, id)
	return e, nil
}

// Close destroys every timer. The board is empty afterwards.
func (b *Board) Close() {
	for id, e := range b.entries {
		e.Timer.Destroy()
		delete(b.entries, id)
	}
}

// Running returns the entries whose timers are counting down.
func (b *Board) Running() []*Entry {
	var out []*Entry
	for _, e := range b.list(domain.ViewAll) {
		if e.Timer.State() == timer.Running {
			out = append(out, e)
		}
	}
	return out
}

func (b *Board) open(id string) (*Entry, error) {
	e, ok := b.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	}
	if e.Todo.Done {
		return nil, ErrItemCompleted
	}
	return e, nil
}
