package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrMiss)

	require.NoError(t, store.Set(ctx, "k", []byte("payload"), time.Minute))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), got)

	// Mutating the returned slice must not touch the stored copy.
	got[0] = 'X'
	again, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), again)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	now := time.Date(2019, time.July, 8, 12, 0, 0, 0, time.UTC)
	store.nowFn = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Hour))

	_, err := store.Get(ctx, "k")
	require.NoError(t, err)

	now = now.Add(time.Hour + time.Second)
	_, err = store.Get(ctx, "k")
	require.ErrorIs(t, err, ErrMiss)

	// Expired entries are swept on the next write.
	require.NoError(t, store.Set(ctx, "other", []byte("v"), time.Hour))
	store.mu.RLock()
	_, stale := store.entries["k"]
	store.mu.RUnlock()
	require.False(t, stale)
}

func TestMemoryOverwrite(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	require.NoError(t, store.Set(ctx, "k", []byte("one"), time.Minute))
	require.NoError(t, store.Set(ctx, "k", []byte("two"), time.Minute))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("two"), got)
}
