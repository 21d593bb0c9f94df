package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dollro/authclient/core/persist"
	"github.com/dollro/authclient/integration/database/redis"
)

func newStore(t *testing.T, opts ...redis.StoreOption) (*redis.Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return redis.NewStore(client, opts...), mr
}

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)

	snap := persist.Snapshot{
		Credential: "abc",
		Profile:    map[string]any{"username": "alice"},
	}
	require.NoError(t, store.Save(context.Background(), snap))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestStoreLoadEmpty(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)
	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, persist.ErrNotFound)
}

func TestStoreClear(t *testing.T) {
	t.Parallel()

	store, _ := newStore(t)

	require.NoError(t, store.Save(context.Background(), persist.Snapshot{Credential: "abc"}))
	require.NoError(t, store.Clear(context.Background()))

	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, persist.ErrNotFound)

	// Clearing an absent snapshot is not an error.
	require.NoError(t, store.Clear(context.Background()))
}

func TestStoreKeyPrefix(t *testing.T) {
	t.Parallel()

	store, mr := newStore(t, redis.WithKeyPrefix("myapp:"))

	require.NoError(t, store.Save(context.Background(), persist.Snapshot{Credential: "abc"}))
	assert.True(t, mr.Exists("myapp:auth"))
}

func TestStoreTTL(t *testing.T) {
	t.Parallel()

	store, mr := newStore(t, redis.WithTTL(time.Hour))

	require.NoError(t, store.Save(context.Background(), persist.Snapshot{Credential: "abc"}))
	assert.Equal(t, time.Hour, mr.TTL("authclient:auth"))

	// Past the TTL the snapshot reads as absent.
	mr.FastForward(2 * time.Hour)
	_, err := store.Load(context.Background())
	require.ErrorIs(t, err, persist.ErrNotFound)
}

func TestStoreCorruptValue(t *testing.T) {
	t.Parallel()

	store, mr := newStore(t)

	require.NoError(t, mr.Set("authclient:auth", "not json"))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, persist.ErrNotFound)
}
