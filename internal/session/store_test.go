package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Hour), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sid-1", "tok-a"))
	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "tok-a", got)

	// one slot per session: a second login overwrites
	require.NoError(t, store.Set(ctx, "sid-1", "tok-b"))
	got, err = store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "tok-b", got)
}

func TestRedisStoreMissingSlot(t *testing.T) {
	store, _ := newTestRedisStore(t)
	got, err := store.Get(context.Background(), "never-set")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisStoreClear(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sid-1", "tok"))
	require.NoError(t, store.Clear(ctx, "sid-1"))
	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Empty(t, got)

	// clearing twice is fine
	require.NoError(t, store.Clear(ctx, "sid-1"))
}

func TestRedisStoreExpiry(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sid-1", "tok"))
	mr.FastForward(2 * time.Hour)

	got, err := store.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Empty(t, got, "expired slot reads as anonymous")
}
