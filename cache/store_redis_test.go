package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T, keyPrefix string) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore("test-redis", client, keyPrefix), mr
}

func TestRedisStore_SetGet(t *testing.T) {
	store, _ := newTestRedisStore(t, "")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key1", []byte("value1"), time.Minute))

	data, err := store.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, "value1", string(data))
}

func TestRedisStore_GetMiss(t *testing.T) {
	store, _ := newTestRedisStore(t, "")

	_, err := store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	store, mr := newTestRedisStore(t, "")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key1", []byte("v"), time.Second))

	mr.FastForward(2 * time.Second)

	_, err := store.Get(ctx, "key1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisStore_DeleteIdempotent(t *testing.T) {
	store, _ := newTestRedisStore(t, "")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key1", []byte("v"), time.Minute))
	require.NoError(t, store.Delete(ctx, "key1"))

	// deleting the same key again is a no-op
	assert.NoError(t, store.Delete(ctx, "key1"))

	_, err := store.Get(ctx, "key1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisStore_DeleteByPrefix(t *testing.T) {
	store, _ := newTestRedisStore(t, "")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "view:/properties", []byte("a"), time.Minute))
	require.NoError(t, store.Set(ctx, "view:/properties?page=2", []byte("b"), time.Minute))
	require.NoError(t, store.Set(ctx, "all_properties", []byte("c"), time.Minute))

	require.NoError(t, store.DeleteByPrefix(ctx, "view:"))

	assert.False(t, store.Exists(ctx, "view:/properties"))
	assert.False(t, store.Exists(ctx, "view:/properties?page=2"))
	assert.True(t, store.Exists(ctx, "all_properties"))
}

func TestRedisStore_KeyPrefixIsolation(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	a := NewRedisStore("a", client, "a:")
	b := NewRedisStore("b", client, "b:")
	ctx := context.Background()

	require.NoError(t, a.Set(ctx, "key", []byte("from-a"), time.Minute))

	_, err := b.Get(ctx, "key")
	assert.ErrorIs(t, err, ErrCacheMiss)

	data, err := a.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "from-a", string(data))
}

func TestRedisStore_BackendDown(t *testing.T) {
	store, mr := newTestRedisStore(t, "")
	mr.Close()

	_, err := store.Get(context.Background(), "key")
	assert.ErrorIs(t, err, ErrStoreGet)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
