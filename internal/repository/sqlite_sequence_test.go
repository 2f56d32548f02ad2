package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/pomotodo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceRepo_AllocatesIncreasingNumbers(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSequenceRepo(db)
	ctx := context.Background()

	first, err := repo.NextTodoSeq(ctx)
	require.NoError(t, err)
	second, err := repo.NextTodoSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestSequenceRepo_NeverReusesDeletedNumbers(t *testing.T) {
	db := testutil.NewTestDB(t)
	seqRepo := NewSQLiteSequenceRepo(db)
	todoRepo := NewSQLiteTodoRepo(db)
	ctx := context.Background()

	seq, err := seqRepo.NextTodoSeq(ctx)
	require.NoError(t, err)
	todo := testutil.NewTestTodo("temp", testutil.WithSeq(seq))
	require.NoError(t, todoRepo.Create(ctx, todo))
	require.NoError(t, todoRepo.Delete(ctx, todo.ID))

	next, err := seqRepo.NextTodoSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, seq+1, next)
}
