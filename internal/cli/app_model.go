package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pomotodo/internal/board"
	"github.com/alexanderramin/pomotodo/internal/cli/formatter"
	"github.com/alexanderramin/pomotodo/internal/domain"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// tabID selects which list the TUI shows.
type tabID int

const (
	tabTodos tabID = iota
	tabCompleted
)

// completionQueue collects entries whose countdown finished during the
// current Update.
type completionQueue struct {
	entries []*board.Entry
}

// appModel is the root bubbletea Model for the TUI.
type appModel struct {
	app   *App
	board *board.Board
	sched *teaScheduler
	done  *completionQueue

	input    textinput.Model
	keys     keyMap
	help     help.Model
	tab      tabID
	cursor   int
	width    int
	height   int
	loading  bool
	quitting bool

	toast    string
	toastSeq int
	err      error
}

func newAppModel(app *App) (appModel, error) {
	sched := newTeaScheduler()
	queue := &completionQueue{}
	b, err := board.New(sched, app.durationSeconds(), board.WithOnComplete(func(e *board.Entry) {
		queue.entries = append(queue.entries, e)
	}))
	if err != nil {
		return appModel{}, err
	}

	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.Prompt = "+ "
	ti.CharLimit = 200

	return appModel{
		app:     app,
		board:   b,
		sched:   sched,
		done:    queue,
		input:   ti,
		keys:    defaultKeyMap(),
		help:    help.New(),
		loading: true,
	}, nil
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	return loadTodosCmd(m.app)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	// Timer callbacks may have armed ticks or finished countdowns.
	finished := next.flushCompletions()
	return next, tea.Batch(cmd, finished, next.sched.Cmds())
}

func (m appModel) update(msg tea.Msg) (appModel, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-6, 10)
		m.help.Width = msg.Width
		return m, nil

	case schedFireMsg:
		m.sched.Fire(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case todosLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		for _, t := range msg.todos {
			if _, ok := m.board.Get(t.ID); ok {
				continue
			}
			if _, err := m.board.Add(t); err != nil {
				m.err = err
			}
		}
		m.clampCursor()
		return m, nil

	case todoCreatedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if _, err := m.board.Add(msg.todo); err != nil {
			m.err = err
			return m, nil
		}
		m.tab = tabTodos
		m.cursor = len(m.board.Active()) - 1
		return m, nil

	case todoSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if e, ok := m.board.Get(msg.todo.ID); ok {
			e.Todo.CompletedAt = msg.todo.CompletedAt
			e.Todo.UpdatedAt = msg.todo.UpdatedAt
		}
		return m, nil

	case todoDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil

	case pomodoroRecordedMsg:
		if msg.err != nil {
			m.app.logger().Error("recording pomodoro failed", "todo_id", msg.todoID, "error", msg.err)
			m.err = msg.err
			return m, nil
		}
		if e, ok := m.board.Get(msg.todoID); ok {
			e.Todo.Pomodoros++
		}
		return m, nil

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (appModel, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	if m.input.Focused() {
		return m.handleInputKey(msg)
	}

	// Any key dismisses a stale error.
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Tab):
		if m.tab == tabTodos {
			m.tab = tabCompleted
		} else {
			m.tab = tabTodos
		}
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.tab = tabTodos
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	e := m.selected()
	if e == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.StartPause):
		if _, err := m.board.StartPause(e.Todo.ID); err != nil {
			return m.timerRefused(err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		if err := m.board.ResetTimer(e.Todo.ID); err != nil {
			return m.timerRefused(err)
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleDone):
		done := !e.Todo.Done
		if _, err := m.board.SetDone(e.Todo.ID, done, time.Now().UTC()); err != nil {
			m.err = err
			return m, nil
		}
		m.clampCursor()
		return m, setDoneCmd(m.app, e.Todo.ID, done)

	case key.Matches(msg, m.keys.Delete):
		if _, err := m.board.Remove(e.Todo.ID); err != nil {
			m.err = err
			return m, nil
		}
		m.clampCursor()
		return m, deleteTodoCmd(m.app, e.Todo.ID)
	}

	return m, nil
}

func (m appModel) handleInputKey(msg tea.KeyMsg) (appModel, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		label, err := domain.NormalizeLabel(m.input.Value())
		if err != nil {
			// Blank input is ignored.
			return m, nil
		}
		m.input.Reset()
		return m, createTodoCmd(m.app, label)
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) quit() (appModel, tea.Cmd) {
	m.quitting = true
	m.board.Close()
	return m, tea.Quit
}

func (m appModel) timerRefused(err error) (appModel, tea.Cmd) {
	if errors.Is(err, board.ErrItemCompleted) {
		return m.showToast("Timer is disabled for completed items")
	}
	m.err = err
	return m, nil
}

func (m appModel) showToast(text string) (appModel, tea.Cmd) {
	m.toastSeq++
	m.toast = text
	return m, toastExpireCmd(m.toastSeq)
}

// flushCompletions announces, logs and persists every countdown that
// finished during this Update.
func (m *appModel) flushCompletions() tea.Cmd {
	if len(m.done.entries) == 0 {
		return nil
	}
	entries := m.done.entries
	m.done.entries = nil

	var cmds []tea.Cmd
	for _, e := range entries {
		m.app.logger().Info("pomodoro completed",
			"todo_id", e.Todo.ID,
			"label", e.Todo.Label,
			"duration_sec", e.Timer.Duration(),
		)
		var toastCmd tea.Cmd
		*m, toastCmd = m.showToast(formatter.CompletionMessage(e.Todo.Label))
		cmds = append(cmds, toastCmd, recordPomodoroCmd(m.app, e, e.Timer.Duration()))
	}
	return tea.Batch(cmds...)
}

// ── selection helpers ────────────────────────────────────────────────────────

func (m *appModel) visible() []*board.Entry {
	if m.tab == tabCompleted {
		return m.board.Completed()
	}
	return m.board.Active()
}

func (m *appModel) selected() *board.Entry {
	rows := m.visible()
	if m.cursor < 0 || m.cursor >= len(rows) {
		return nil
	}
	return rows[m.cursor]
}

func (m *appModel) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// runningLabel describes the running countdowns for the header.
func (m *appModel) runningLabel() string {
	running := m.board.Running()
	switch len(running) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf("%s %s", running[0].Timer.DisplayText(), running[0].Todo.Label)
	default:
		return fmt.Sprintf("%d timers running", len(running))
	}
}
