package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/pomotodo/internal/timer"
)

// Loop is a wall-clock Scheduler that executes every callback on the
// goroutine running Run. Every and Handle.Cancel must be called either
// before Run starts or from inside a callback; other goroutines hand work
// to the loop with Post.
type Loop struct {
	events   chan func()
	done     chan struct{}
	stopOnce sync.Once
}

var _ timer.Scheduler = (*Loop)(nil)

// NewLoop creates a loop that is not yet running.
func NewLoop() *Loop {
	return &Loop{
		events: make(chan func(), 16),
		done:   make(chan struct{}),
	}
}

type loopHandle struct {
	fn        func()
	stop      chan struct{}
	cancelled bool
}

func (h *loopHandle) Cancel() {
	if h.cancelled {
		return
	}
	h.cancelled = true
	close(h.stop)
}

// Every implements timer.Scheduler.
func (l *Loop) Every(interval time.Duration, fn func()) timer.Handle {
	h := &loopHandle{fn: fn, stop: make(chan struct{})}
	go l.pump(h, interval)
	return h
}

// pump forwards ticker fires onto the loop until the handle is cancelled or
// the loop exits.
func (l *Loop) pump(h *loopHandle, interval time.Duration) {
	tk := time.NewTicker(interval)
	defer tk.Stop()

	fire := func() {
		// A fire queued before Cancel is dropped here, on the loop goroutine.
		if !h.cancelled {
			h.fn()
		}
	}
	for {
		select {
		case <-tk.C:
			select {
			case l.events <- fire:
			case <-h.stop:
				return
			case <-l.done:
				return
			}
		case <-h.stop:
			return
		case <-l.done:
			return
		}
	}
}

// Post queues fn to run on the loop goroutine. It reports false when the
// loop has already exited.
func (l *Loop) Post(fn func()) bool {
	select {
	case l.events <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Run executes queued callbacks until ctx is done. A Loop runs once.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stopOnce.Do(func() { close(l.done) })
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.events:
			fn()
		}
	}
}
