package diskv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/routine/internal/storage"
)

func TestGetSetDelete(t *testing.T) {
	ctx := context.Background()
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get(ctx, "routine-activities")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set(ctx, "routine-activities", []byte("[]")))
	got, err := s.Get(ctx, "routine-activities")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"routine-activities"}, keys)

	require.NoError(t, s.Delete(ctx, "routine-activities"))
	require.NoError(t, s.Delete(ctx, "routine-activities"), "deleting twice is not an error")
	_, err = s.Get(ctx, "routine-activities")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRejectsPathKeys(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, s.Set(context.Background(), "../escape", []byte("x")))
}

func TestPersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s1, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, storage.SaveList(ctx, s1, "goals", []int{1, 2, 3}))

	s2, err := Open(dir)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, storage.LoadList[int](ctx, s2, "goals"))
}
