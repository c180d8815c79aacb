package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore("test-mem", 100)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key1", []byte("value1"), time.Minute))

	data, err := store.Get(ctx, "key1")
	require.NoError(t, err)
	assert.Equal(t, "value1", string(data))
}

func TestMemoryStore_GetMiss(t *testing.T) {
	store := NewMemoryStore("test-mem", 100)

	_, err := store.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore("test-mem", 100)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key1", []byte("v"), 10*time.Millisecond))

	time.Sleep(30 * time.Millisecond)

	_, err := store.Get(ctx, "key1")
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.False(t, store.Exists(ctx, "key1"))
}

func TestMemoryStore_ZeroTTLNeverExpires(t *testing.T) {
	store := NewMemoryStore("test-mem", 100)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key1", []byte("v"), 0))

	time.Sleep(20 * time.Millisecond)

	_, err := store.Get(ctx, "key1")
	assert.NoError(t, err)
}

func TestMemoryStore_DeleteIdempotent(t *testing.T) {
	store := NewMemoryStore("test-mem", 100)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "key1", []byte("v"), time.Minute))
	require.NoError(t, store.Delete(ctx, "key1"))
	assert.NoError(t, store.Delete(ctx, "key1"))

	_, err := store.Get(ctx, "key1")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryStore_DeleteByPrefix(t *testing.T) {
	store := NewMemoryStore("test-mem", 100)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "view:a", []byte("1"), time.Minute))
	require.NoError(t, store.Set(ctx, "view:b", []byte("2"), time.Minute))
	require.NoError(t, store.Set(ctx, "other", []byte("3"), time.Minute))

	require.NoError(t, store.DeleteByPrefix(ctx, "view:"))

	assert.Equal(t, 1, store.Size())
	assert.True(t, store.Exists(ctx, "other"))
}

func TestMemoryStore_EvictionAtCapacity(t *testing.T) {
	store := NewMemoryStore("test-mem", 3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Set(ctx, fmt.Sprintf("key%d", i), []byte("v"), time.Minute))
	}

	assert.LessOrEqual(t, store.Size(), 3)
}
