package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRedisStore connects to SMARTSTORE_TEST_REDIS (default localhost:6379)
// and skips the test when no server answers.
func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	addr := os.Getenv("SMARTSTORE_TEST_REDIS")
	if addr == "" {
		addr = "localhost:6379"
	}
	rs, err := NewRedisStore(addr)
	if err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = rs.Close() })
	return rs
}

func TestRedisStoreBasic(t *testing.T) {
	ctx := context.Background()
	rs := newTestRedisStore(t)
	defer rs.Remove(ctx, "smartstore_test_key")

	assert.True(t, rs.Available(ctx))

	err := rs.Set(ctx, "smartstore_test_key", `{"count":5,"name":"test"}`)
	require.NoError(t, err)

	val, ok, err := rs.Get(ctx, "smartstore_test_key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"count":5,"name":"test"}`, val)
}

func TestRedisStoreRemove(t *testing.T) {
	ctx := context.Background()
	rs := newTestRedisStore(t)

	require.NoError(t, rs.Set(ctx, "smartstore_del_key", "value"))
	require.NoError(t, rs.Remove(ctx, "smartstore_del_key"))

	_, ok, err := rs.Get(ctx, "smartstore_del_key")
	require.NoError(t, err)
	assert.False(t, ok, "key should not exist after Remove")

	// removing a missing key is a no-op
	assert.NoError(t, rs.Remove(ctx, "smartstore_del_key"))
}

func TestRedisStoreDoesNotExist(t *testing.T) {
	ctx := context.Background()
	rs := newTestRedisStore(t)

	val, ok, err := rs.Get(ctx, "smartstore_nonexistent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, val)
}
