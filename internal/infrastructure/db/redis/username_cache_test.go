package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newTestCache connects to the redis named by REDIS_TEST_ADDR and skips the
// test when it is unset.
func newTestCache(t *testing.T) *UsernameCache {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client, err := Connect(context.Background(), Config{Addr: addr, DB: 15})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return NewUsernameCache(client, time.Minute)
}

func TestUsernameCache_RoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()
	name := "cache_" + time.Now().Format("150405.000000")
	t.Cleanup(func() { _ = cache.Forget(ctx, name) })

	_, found, err := cache.Lookup(ctx, name)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, cache.Store(ctx, name, true))
	taken, found, err := cache.Lookup(ctx, name)
	require.NoError(t, err)
	require.True(t, found)
	require.True(t, taken)

	require.NoError(t, cache.Forget(ctx, name))
	_, found, err = cache.Lookup(ctx, name)
	require.NoError(t, err)
	require.False(t, found)
}

func TestUsernameCache_KeysAreCaseSensitive(t *testing.T) {
	c := NewUsernameCache(nil, 0)
	require.NotEqual(t, c.key("Jane_Doe"), c.key("jane_doe"))
	require.Equal(t, defaultUsernameTTL, c.ttl)
}
