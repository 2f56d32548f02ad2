package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/pomotodo/internal/db"
	"github.com/alexanderramin/pomotodo/internal/domain"
	"github.com/alexanderramin/pomotodo/internal/repository"
	"github.com/alexanderramin/pomotodo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepos(t *testing.T) (repository.TodoRepo, repository.PomodoroRepo, db.UnitOfWork) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return repository.NewSQLiteTodoRepo(database),
		repository.NewSQLitePomodoroRepo(database),
		testutil.NewTestUoW(database)
}

// recordingObserver collects use-case events.
type recordingObserver struct {
	events []UseCaseEvent
}

func (r *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	r.events = append(r.events, e)
}

func TestCreate_AssignsIDAndSequentialSeq(t *testing.T) {
	todos, _, uow := setupRepos(t)
	svc := NewTodoService(todos, uow)
	ctx := context.Background()

	a, err := svc.Create(ctx, "  buy milk ")
	require.NoError(t, err)
	b, err := svc.Create(ctx, "walk dog")
	require.NoError(t, err)

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, "buy milk", a.Label, "label is trimmed")
	assert.Equal(t, 1, a.Seq)
	assert.Equal(t, 2, b.Seq)

	stored, err := todos.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", stored.Label)
}

func TestCreate_RejectsBlankLabel(t *testing.T) {
	todos, _, uow := setupRepos(t)
	obs := &recordingObserver{}
	svc := NewTodoService(todos, uow, obs)

	_, err := svc.Create(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyLabel)

	list, err := todos.List(context.Background(), domain.ViewAll)
	require.NoError(t, err)
	assert.Empty(t, list)

	require.Len(t, obs.events, 1)
	assert.Equal(t, "create-todo", obs.events[0].Name)
	assert.False(t, obs.events[0].Success)
}

func TestCreate_SeqNotReusedAfterDelete(t *testing.T) {
	todos, _, uow := setupRepos(t)
	svc := NewTodoService(todos, uow)
	ctx := context.Background()

	a, err := svc.Create(ctx, "first")
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, a.ID))

	b, err := svc.Create(ctx, "second")
	require.NoError(t, err)
	assert.Equal(t, 2, b.Seq)
}

func TestResolve(t *testing.T) {
	todos, _, uow := setupRepos(t)
	ctx := context.Background()
	svc := NewTodoService(todos, uow)

	a := testutil.NewTestTodo("a", testutil.WithTodoID("aaaa1111"), testutil.WithSeq(3))
	b := testutil.NewTestTodo("b", testutil.WithTodoID("aaab2222"), testutil.WithSeq(4))
	require.NoError(t, todos.Create(ctx, a))
	require.NoError(t, todos.Create(ctx, b))

	got, err := svc.Resolve(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	got, err = svc.Resolve(ctx, "#4")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	got, err = svc.Resolve(ctx, "aaab")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = svc.Resolve(ctx, "aaa")
	assert.ErrorIs(t, err, ErrAmbiguousRef)

	_, err = svc.Resolve(ctx, "#99")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Resolve(ctx, "zzz")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.Resolve(ctx, " ")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSetDone_TogglesAndPersists(t *testing.T) {
	todos, _, uow := setupRepos(t)
	svc := NewTodoService(todos, uow)
	ctx := context.Background()

	todo, err := svc.Create(ctx, "ship it")
	require.NoError(t, err)

	done, err := svc.SetDone(ctx, todo.ID, true)
	require.NoError(t, err)
	assert.True(t, done.Done)
	require.NotNil(t, done.CompletedAt)

	completed, err := svc.List(ctx, domain.ViewCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)

	reopened, err := svc.SetDone(ctx, todo.ID, false)
	require.NoError(t, err)
	assert.False(t, reopened.Done)
	assert.Nil(t, reopened.CompletedAt)

	active, err := svc.List(ctx, domain.ViewActive)
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestSetDone_UnknownID(t *testing.T) {
	todos, _, uow := setupRepos(t)
	svc := NewTodoService(todos, uow)

	_, err := svc.SetDone(context.Background(), "missing", true)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSetDone_RollbackOnUpdateFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	todos := repository.NewSQLiteTodoRepo(database)
	ctx := context.Background()

	todo := testutil.NewTestTodo("rollback")
	require.NoError(t, todos.Create(ctx, todo))

	failUoW := &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: errors.New("injected update failure")}
	svc := NewTodoService(todos, failUoW)

	_, err := svc.SetDone(ctx, todo.ID, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected update failure")

	stored, err := todos.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.False(t, stored.Done)
}
