package cli

import (
	"sort"
	"time"

	"github.com/alexanderramin/pomotodo/internal/timer"
	tea "github.com/charmbracelet/bubbletea"
)

// schedFireMsg is delivered by tea.Tick when an armed handle is due. seq
// ties it to one arming so ticks from a cancelled or re-armed handle are
// ignored.
type schedFireMsg struct {
	id  int
	seq int
}

// teaScheduler implements timer.Scheduler on top of the Bubble Tea event
// loop. Each armed handle has exactly one tea.Tick in flight; callbacks run
// inside Update when the fire message comes back. It is only touched from
// Update, so it needs no locking.
type teaScheduler struct {
	nextID  int
	handles map[int]*teaHandle
	pending []tea.Cmd
}

var _ timer.Scheduler = (*teaScheduler)(nil)

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{handles: make(map[int]*teaHandle)}
}

type teaHandle struct {
	s         *teaScheduler
	id        int
	seq       int
	interval  time.Duration
	fn        func()
	cancelled bool
}

func (h *teaHandle) Cancel() {
	if h.cancelled {
		return
	}
	h.cancelled = true
	delete(h.s.handles, h.id)
}

// Every implements timer.Scheduler.
func (s *teaScheduler) Every(interval time.Duration, fn func()) timer.Handle {
	if interval <= 0 {
		interval = timer.TickInterval
	}
	s.nextID++
	h := &teaHandle{s: s, id: s.nextID, interval: interval, fn: fn}
	s.handles[h.id] = h
	s.arm(h)
	return h
}

func (s *teaScheduler) arm(h *teaHandle) {
	h.seq++
	msg := schedFireMsg{id: h.id, seq: h.seq}
	s.pending = append(s.pending, tea.Tick(h.interval, func(time.Time) tea.Msg {
		return msg
	}))
}

// Fire runs the callback for msg and re-arms the handle. It reports false
// for stale messages.
func (s *teaScheduler) Fire(msg schedFireMsg) bool {
	h, ok := s.handles[msg.id]
	if !ok || h.seq != msg.seq {
		return false
	}
	h.fn()
	if !h.cancelled {
		s.arm(h)
	}
	return true
}

// Cmds returns the ticks armed since the last call.
func (s *teaScheduler) Cmds() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Armed returns the fire message each live handle is waiting for, in
// registration order.
func (s *teaScheduler) Armed() []schedFireMsg {
	out := make([]schedFireMsg, 0, len(s.handles))
	for _, h := range s.handles {
		out = append(out, schedFireMsg{id: h.id, seq: h.seq})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}
