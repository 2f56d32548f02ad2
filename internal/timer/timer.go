// Package timer implements the per-item countdown that drives a focus
// session. A TaskTimer owns its remaining time and run state and exposes
// the values a renderer needs each tick; it never draws anything itself.
//
// TaskTimer is not safe for concurrent use. The Scheduler it is given must
// run every callback on the same loop that calls Start, Pause, Reset and
// Destroy.
package timer

import (
	"errors"
	"fmt"
	"time"
)

// DefaultDurationSeconds is the length of one pomodoro.
const DefaultDurationSeconds = 25 * 60

// TickInterval is how often a running timer decrements.
const TickInterval = time.Second

var (
	// ErrInvalidDuration is returned when a timer is built with a
	// non-positive duration or without a scheduler.
	ErrInvalidDuration = errors.New("timer duration must be positive")

	// ErrInvalidTransition is returned by Start when the timer cannot run
	// from its current state. Callers treat it as a silent no-op.
	ErrInvalidTransition = errors.New("invalid timer transition")
)

// State is the run state of a TaskTimer.
type State int

const (
	Idle State = iota
	Running
	Paused
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Scheduler runs fn every interval until the returned Handle is cancelled.
type Scheduler interface {
	Every(interval time.Duration, fn func()) Handle
}

// Handle cancels a scheduled callback. Cancel must be idempotent.
type Handle interface {
	Cancel()
}

// Option configures a TaskTimer.
type Option func(*TaskTimer)

// WithOnComplete registers fn to run once each time a run reaches zero.
func WithOnComplete(fn func()) Option {
	return func(t *TaskTimer) { t.onComplete = fn }
}

// WithOnRedraw registers fn to run after every effective tick.
func WithOnRedraw(fn func()) Option {
	return func(t *TaskTimer) { t.onRedraw = fn }
}

// TaskTimer is a countdown for one to-do item.
type TaskTimer struct {
	duration  int
	remaining int
	state     State
	destroyed bool

	sched  Scheduler
	handle Handle
	// gen identifies the current run; callbacks from older runs are dropped.
	gen uint64

	onComplete func()
	onRedraw   func()
}

// New creates an idle timer with remaining == durationSeconds.
func New(durationSeconds int, sched Scheduler, opts ...Option) (*TaskTimer, error) {
	if durationSeconds <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationSeconds)
	}
	if sched == nil {
		return nil, fmt.Errorf("%w: nil scheduler", ErrInvalidDuration)
	}
	t := &TaskTimer{
		duration:  durationSeconds,
		remaining: durationSeconds,
		state:     Idle,
		sched:     sched,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

func (t *TaskTimer) Duration() int  { return t.duration }
func (t *TaskTimer) Remaining() int { return t.remaining }
func (t *TaskTimer) State() State   { return t.state }

// Destroyed reports whether Destroy has been called.
func (t *TaskTimer) Destroyed() bool { return t.destroyed }

// Start begins or resumes counting down.
func (t *TaskTimer) Start() error {
	if t.destroyed || t.remaining == 0 {
		return ErrInvalidTransition
	}
	if t.state != Idle && t.state != Paused {
		return ErrInvalidTransition
	}
	t.state = Running
	t.gen++
	gen := t.gen
	t.handle = t.sched.Every(TickInterval, func() { t.fire(gen) })
	return nil
}

// Pause stops counting and keeps the remaining time. It is a no-op unless
// the timer is running.
func (t *TaskTimer) Pause() {
	if t.state != Running {
		return
	}
	t.cancel()
	t.state = Paused
}

// Reset cancels any pending tick and rewinds to the full duration.
func (t *TaskTimer) Reset() {
	t.cancel()
	t.remaining = t.duration
	t.state = Idle
}

// Destroy cancels any pending tick. The timer cannot be started again.
func (t *TaskTimer) Destroy() {
	t.cancel()
	t.destroyed = true
	if t.state == Running {
		t.state = Paused
	}
}

// Tick applies one elapsed second. It does nothing unless the timer is
// running.
func (t *TaskTimer) Tick() {
	if t.state != Running {
		return
	}
	if t.remaining > 0 {
		t.remaining--
	}
	if t.onRedraw != nil {
		t.onRedraw()
	}
	if t.remaining > 0 {
		return
	}
	t.cancel()
	t.state = Completed
	if t.onComplete != nil {
		t.onComplete()
	}
}

// ProgressFraction returns elapsed/duration in [0,1].
func (t *TaskTimer) ProgressFraction() float64 {
	return float64(t.duration-t.remaining) / float64(t.duration)
}

// DisplayText returns the remaining time as MM:SS.
func (t *TaskTimer) DisplayText() string {
	return FormatClock(t.remaining)
}

// FormatClock formats seconds as zero-padded MM:SS. Minutes widen past two
// digits instead of wrapping into hours.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func (t *TaskTimer) fire(gen uint64) {
	if gen != t.gen {
		return
	}
	t.Tick()
}

// cancel drops the pending handle and invalidates in-flight callbacks.
func (t *TaskTimer) cancel() {
	if t.handle != nil {
		t.handle.Cancel()
		t.handle = nil
	}
	t.gen++
}
