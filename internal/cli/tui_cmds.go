package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/pomotodo/internal/board"
	"github.com/alexanderramin/pomotodo/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

// toastDuration is how long a notice stays on screen.
const toastDuration = 4 * time.Second

type todosLoadedMsg struct {
	todos []*domain.Todo
	err   error
}

type todoCreatedMsg struct {
	todo *domain.Todo
	err  error
}

type todoSavedMsg struct {
	todo *domain.Todo
	err  error
}

type todoDeletedMsg struct {
	id  string
	err error
}

type pomodoroRecordedMsg struct {
	todoID string
	err    error
}

// toastExpiredMsg clears the notice it was issued for.
type toastExpiredMsg struct{ seq int }

func loadTodosCmd(app *App) tea.Cmd {
	return func() tea.Msg {
		todos, err := app.Todos.List(context.Background(), domain.ViewAll)
		return todosLoadedMsg{todos: todos, err: err}
	}
}

func createTodoCmd(app *App, label string) tea.Cmd {
	return func() tea.Msg {
		todo, err := app.Todos.Create(context.Background(), label)
		return todoCreatedMsg{todo: todo, err: err}
	}
}

func setDoneCmd(app *App, id string, done bool) tea.Cmd {
	return func() tea.Msg {
		todo, err := app.Todos.SetDone(context.Background(), id, done)
		return todoSavedMsg{todo: todo, err: err}
	}
}

func deleteTodoCmd(app *App, id string) tea.Cmd {
	return func() tea.Msg {
		return todoDeletedMsg{id: id, err: app.Todos.Delete(context.Background(), id)}
	}
}

// recordPomodoroCmd persists a finished countdown and rings the bell.
func recordPomodoroCmd(app *App, e *board.Entry, durationSec int) tea.Cmd {
	todoID, startedAt := e.Todo.ID, e.StartedAt
	return func() tea.Msg {
		app.ring()
		_, err := app.Focus.RecordCompletion(context.Background(), todoID, startedAt, durationSec)
		return pomodoroRecordedMsg{todoID: todoID, err: err}
	}
}

func toastExpireCmd(seq int) tea.Cmd {
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// runTUI opens the interactive list and blocks until the user quits.
func runTUI(app *App) error {
	m, err := newAppModel(app)
	if err != nil {
		return err
	}
	defer m.board.Close()

	var opts []tea.ProgramOption
	if app.Config == nil || app.Config.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	_, err = tea.NewProgram(m, opts...).Run()
	return err
}
