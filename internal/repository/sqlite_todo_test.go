package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/pomotodo/internal/domain"
	"github.com/alexanderramin/pomotodo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoRepo_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTodoRepo(db)
	ctx := context.Background()

	todo := testutil.NewTestTodo("Write report", testutil.WithPomodoros(2))
	require.NoError(t, repo.Create(ctx, todo))

	fetched, err := repo.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, fetched.ID)
	assert.Equal(t, todo.Seq, fetched.Seq)
	assert.Equal(t, "Write report", fetched.Label)
	assert.False(t, fetched.Done)
	assert.Equal(t, 2, fetched.Pomodoros)
	assert.Nil(t, fetched.CompletedAt)
	assert.True(t, todo.CreatedAt.Equal(fetched.CreatedAt))

	bySeq, err := repo.GetBySeq(ctx, todo.Seq)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, bySeq.ID)
}

func TestTodoRepo_GetNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTodoRepo(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetBySeq(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTodoRepo_DuplicateSeqRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTodoRepo(db)
	ctx := context.Background()

	a := testutil.NewTestTodo("a")
	require.NoError(t, repo.Create(ctx, a))
	b := testutil.NewTestTodo("b", testutil.WithSeq(a.Seq))
	assert.Error(t, repo.Create(ctx, b))
}

func TestTodoRepo_ListByView(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTodoRepo(db)
	ctx := context.Background()
	doneAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	open1 := testutil.NewTestTodo("open one")
	closed := testutil.NewTestTodo("closed", testutil.WithDone(doneAt))
	open2 := testutil.NewTestTodo("open two")
	for _, td := range []*domain.Todo{open2, closed, open1} {
		require.NoError(t, repo.Create(ctx, td))
	}

	active, err := repo.List(ctx, domain.ViewActive)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, open1.ID, active[0].ID, "ordered by seq")
	assert.Equal(t, open2.ID, active[1].ID)

	completed, err := repo.List(ctx, domain.ViewCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.True(t, completed[0].Done)
	require.NotNil(t, completed[0].CompletedAt)
	assert.True(t, doneAt.Equal(*completed[0].CompletedAt))

	all, err := repo.List(ctx, domain.ViewAll)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestTodoRepo_FindByIDPrefix(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTodoRepo(db)
	ctx := context.Background()

	a := testutil.NewTestTodo("a", testutil.WithTodoID("abc123"))
	b := testutil.NewTestTodo("b", testutil.WithTodoID("abd456"))
	c := testutil.NewTestTodo("c", testutil.WithTodoID("a_c789"))
	for _, td := range []*domain.Todo{a, b, c} {
		require.NoError(t, repo.Create(ctx, td))
	}

	got, err := repo.FindByIDPrefix(ctx, "ab")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.FindByIDPrefix(ctx, "abc")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "abc123", got[0].ID)

	got, err = repo.FindByIDPrefix(ctx, "a_")
	require.NoError(t, err)
	require.Len(t, got, 1, "underscore matches literally")
	assert.Equal(t, "a_c789", got[0].ID)

	got, err = repo.FindByIDPrefix(ctx, "zz")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTodoRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteTodoRepo(db)
	ctx := context.Background()

	todo := testutil.NewTestTodo("draft")
	require.NoError(t, repo.Create(ctx, todo))

	now := time.Date(2025, 4, 2, 12, 0, 0, 0, time.UTC)
	todo.Label = "final"
	todo.SetDone(true, now)
	todo.ApplyPomodoro(now)
	require.NoError(t, repo.Update(ctx, todo))

	fetched, err := repo.GetByID(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", fetched.Label)
	assert.True(t, fetched.Done)
	assert.Equal(t, 1, fetched.Pomodoros)
	assert.True(t, now.Equal(fetched.UpdatedAt))

	require.NoError(t, repo.Delete(ctx, todo.ID))
	_, err = repo.GetByID(ctx, todo.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, todo.ID), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, todo), ErrNotFound)
}
