package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, ok, err := store.GetItem(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.SetItem(ctx, "a", "1"))
	require.NoError(t, store.SetItem(ctx, "b", "2"))

	value, ok, err := store.GetItem(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "1", value)

	require.NoError(t, store.SetItem(ctx, "a", "overwritten"))
	value, _, _ = store.GetItem(ctx, "a")
	require.Equal(t, "overwritten", value)

	require.NoError(t, store.RemoveItem(ctx, "a"))
	_, ok, _ = store.GetItem(ctx, "a")
	require.False(t, ok)

	// Removing an absent key is not an error.
	require.NoError(t, store.RemoveItem(ctx, "a"))

	require.NoError(t, store.SetItem(ctx, "c", "3"))
	require.NoError(t, store.MultiRemove(ctx, []string{"b", "c", "never-there"}))
	_, ok, _ = store.GetItem(ctx, "b")
	require.False(t, ok)
	_, ok, _ = store.GetItem(ctx, "c")
	require.False(t, ok)
}
