// Package schedule provides timer.Scheduler implementations: Manual for
// deterministic stepping and Loop for a single-goroutine wall-clock loop.
package schedule

import (
	"time"

	"github.com/alexanderramin/pomotodo/internal/timer"
)

// Manual is a Scheduler driven by explicit Advance calls. Callbacks run on
// the caller's goroutine.
type Manual struct {
	now     time.Duration
	nextID  int
	entries []*manualEntry
}

type manualEntry struct {
	id        int
	interval  time.Duration
	next      time.Duration
	fn        func()
	cancelled bool
}

// Cancel marks the entry dead; it never fires again.
func (e *manualEntry) Cancel() { e.cancelled = true }

var _ timer.Scheduler = (*Manual)(nil)

// NewManual returns a Manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Every implements timer.Scheduler.
func (m *Manual) Every(interval time.Duration, fn func()) timer.Handle {
	if interval <= 0 {
		interval = time.Second
	}
	m.nextID++
	e := &manualEntry{id: m.nextID, interval: interval, next: m.now + interval, fn: fn}
	m.entries = append(m.entries, e)
	return e
}

// Advance moves the clock forward by d, firing due callbacks in deadline
// order (ties in registration order).
func (m *Manual) Advance(d time.Duration) {
	target := m.now + d
	for {
		e := m.nextDue(target)
		if e == nil {
			break
		}
		m.now = e.next
		e.next += e.interval
		e.fn()
	}
	m.now = target
	m.compact()
}

// Step advances by n whole seconds.
func (m *Manual) Step(n int) {
	for i := 0; i < n; i++ {
		m.Advance(time.Second)
	}
}

// Pending returns the number of live scheduled callbacks.
func (m *Manual) Pending() int {
	n := 0
	for _, e := range m.entries {
		if !e.cancelled {
			n++
		}
	}
	return n
}

func (m *Manual) nextDue(target time.Duration) *manualEntry {
	var best *manualEntry
	for _, e := range m.entries {
		if e.cancelled || e.next > target {
			continue
		}
		if best == nil || e.next < best.next {
			best = e
		}
	}
	return best
}

func (m *Manual) compact() {
	live := m.entries[:0]
	for _, e := range m.entries {
		if !e.cancelled {
			live = append(live, e)
		}
	}
	m.entries = live
}
