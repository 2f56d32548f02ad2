package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/pomotodo/internal/config"
	"github.com/alexanderramin/pomotodo/internal/domain"
	"github.com/alexanderramin/pomotodo/internal/repository"
	"github.com/alexanderramin/pomotodo/internal/service"
	"github.com/alexanderramin/pomotodo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App backed by an in-memory DB with a 3 second
// countdown. The returned buffer collects terminal bells.
func testApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	db := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(db)

	cfg := config.Default(t.TempDir())
	cfg.Pomodoro.Duration = 3 * time.Second

	bell := new(bytes.Buffer)
	return &App{
		Todos:  service.NewTodoService(repository.NewSQLiteTodoRepo(db), uow),
		Focus:  service.NewFocusService(repository.NewSQLitePomodoroRepo(db), uow),
		Import: service.NewImportService(uow),
		Config: cfg,
		Bell:   bell,
	}, bell
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func seedTodos(t *testing.T, app *App, labels ...string) []*domain.Todo {
	t.Helper()
	out := make([]*domain.Todo, 0, len(labels))
	for _, l := range labels {
		todo, err := app.Todos.Create(context.Background(), l)
		require.NoError(t, err)
		out = append(out, todo)
	}
	return out
}

func TestRootCmd_PrintsHelpWithoutTerminal(t *testing.T) {
	app, _ := testApp(t)
	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "pomotodo")
	assert.Contains(t, out, "focus")
}

func TestAddCmd(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "add", "Write", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Added #1 Write report")

	todos, err := app.Todos.List(context.Background(), domain.ViewAll)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Write report", todos[0].Label)
}

func TestAddCmd_RequiresLabelOffTerminal(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "add")
	assert.ErrorContains(t, err, "label is required")
}

func TestAddCmd_RejectsBlankLabel(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "add", "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyLabel)
}

func TestListCmd_Views(t *testing.T) {
	app, _ := testApp(t)
	todos := seedTodos(t, app, "Open item", "Closed item")
	_, err := app.Todos.SetDone(context.Background(), todos[1].ID, true)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Open item")
	assert.NotContains(t, out, "Closed item")

	out, err = executeCmd(t, app, "list", "--completed")
	require.NoError(t, err)
	assert.NotContains(t, out, "Open item")
	assert.Contains(t, out, "Closed item")

	out, err = executeCmd(t, app, "ls", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Open item")
	assert.Contains(t, out, "Closed item")

	_, err = executeCmd(t, app, "list", "--all", "--completed")
	assert.Error(t, err)
}

func TestListCmd_Empty(t *testing.T) {
	app, _ := testApp(t)
	out, err := executeCmd(t, app, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No to-dos.")
}

func TestDoneAndUndoCmd(t *testing.T) {
	app, _ := testApp(t)
	todos := seedTodos(t, app, "Ship release")
	ctx := context.Background()

	out, err := executeCmd(t, app, "done", "#1")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed #1 Ship release")
	got, err := app.Todos.GetByID(ctx, todos[0].ID)
	require.NoError(t, err)
	assert.True(t, got.Done)

	out, err = executeCmd(t, app, "undo", todos[0].ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "Reopened #1 Ship release")
	got, err = app.Todos.GetByID(ctx, todos[0].ID)
	require.NoError(t, err)
	assert.False(t, got.Done)
}

func TestDoneCmd_UnknownRef(t *testing.T) {
	app, _ := testApp(t)
	_, err := executeCmd(t, app, "done", "42")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = executeCmd(t, app, "done")
	assert.Error(t, err, "REF is required")
}

func TestRemoveCmd(t *testing.T) {
	app, _ := testApp(t)
	seedTodos(t, app, "Throwaway", "Keeper")

	out, err := executeCmd(t, app, "rm", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted #1 Throwaway")

	todos, err := app.Todos.List(context.Background(), domain.ViewAll)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Keeper", todos[0].Label)
}

func TestStatsCmd(t *testing.T) {
	app, _ := testApp(t)
	todos := seedTodos(t, app, "Deep work")
	_, err := app.Focus.RecordCompletion(context.Background(), todos[0].ID, time.Time{}, 1500)
	require.NoError(t, err)

	out, err := executeCmd(t, app, "stats", "--days", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "FOCUS, LAST 3 DAYS")
	assert.Contains(t, out, "Deep work")
	assert.Contains(t, out, "1 pomodoros, 25m focused")
}

func TestFocusCmd_RunsToCompletion(t *testing.T) {
	app, bell := testApp(t)
	todos := seedTodos(t, app, "Quick task")

	out, err := executeCmd(t, app, "focus", "1", "--duration", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "00:01")
	assert.Contains(t, out, "00:00")
	assert.Contains(t, out, `Pomodoro for "Quick task" completed!`)
	assert.Equal(t, "\a", bell.String())

	got, err := app.Todos.GetByID(context.Background(), todos[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Pomodoros)

	logs, err := app.Focus.ListByTodo(context.Background(), todos[0].ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 1, logs[0].DurationSec)
}

func TestFocusCmd_RejectsCompletedItem(t *testing.T) {
	app, _ := testApp(t)
	todos := seedTodos(t, app, "Already done")
	_, err := app.Todos.SetDone(context.Background(), todos[0].ID, true)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "focus", "1")
	assert.ErrorContains(t, err, "is completed")
}

func TestFocusCmd_RejectsBadDuration(t *testing.T) {
	app, _ := testApp(t)
	seedTodos(t, app, "Task")

	for _, d := range []string{"0", "-5", "1500ms", "soon"} {
		_, err := executeCmd(t, app, "focus", "1", "--duration", d)
		assert.ErrorContains(t, err, "invalid config", "duration=%q", d)
	}
}

func TestDurationValue(t *testing.T) {
	var v durationValue
	assert.Equal(t, 1500, v.seconds(1500), "unset falls back")
	assert.Equal(t, "", v.String())

	require.NoError(t, v.Set("2m"))
	assert.Equal(t, 120, v.seconds(1500))
	assert.Equal(t, "2m0s", v.String())
	assert.Equal(t, "duration", v.Type())
}

func TestImportCmd(t *testing.T) {
	app, _ := testApp(t)
	seedTodos(t, app, "Existing")
	path := filepath.Join(t.TempDir(), "todos.json")
	data := `{"todos":[{"label":"Plan week"},{"label":"Old task","done":true,"pomodoros":3}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 to-dos (1 completed)")
	assert.Contains(t, out, "#2")
	assert.Contains(t, out, "Plan week")

	todos, err := app.Todos.List(context.Background(), domain.ViewAll)
	require.NoError(t, err)
	assert.Len(t, todos, 3)
}

func TestImportCmd_InvalidFile(t *testing.T) {
	app, _ := testApp(t)
	path := filepath.Join(t.TempDir(), "todos.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"todos":[]}`), 0644))

	_, err := executeCmd(t, app, "import", path)
	assert.ErrorContains(t, err, "import validation failed")
}
