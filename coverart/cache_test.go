package coverart

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRUCache_Evicts(t *testing.T) {
	ctx := context.Background()
	cache, err := NewLRUCache(2)
	require.NoError(t, err)

	require.NoError(t, cache.Set(ctx, "a", []byte("1")))
	require.NoError(t, cache.Set(ctx, "b", []byte("2")))
	_, ok, _ := cache.Get(ctx, "a")
	require.True(t, ok)
	require.NoError(t, cache.Set(ctx, "c", []byte("3")))

	assert.Equal(t, 2, cache.Len())
	_, ok, _ = cache.Get(ctx, "b")
	assert.False(t, ok, "b was least recently used")
	v, ok, err := cache.Get(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("1"), v)

	_, err = NewLRUCache(0)
	assert.Error(t, err)
}

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	cache, err := NewRedisCache(ctx, addr, time.Minute)
	require.NoError(t, err)
	defer cache.Close()

	key := "test:" + time.Now().Format(time.RFC3339Nano)
	_, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, key, []byte("thumbs")))
	v, ok, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("thumbs"), v)
}
