package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultUsernameTTL = 30 * time.Second

// UsernameCache remembers recent uniqueness answers so repeated blurs on the
// same value do not hit the GraphQL store.
// Key format: username:<username>. Matching is case-sensitive like the store.
type UsernameCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUsernameCache wraps client. A non-positive ttl uses defaultUsernameTTL.
func NewUsernameCache(client *redis.Client, ttl time.Duration) *UsernameCache {
	if ttl <= 0 {
		ttl = defaultUsernameTTL
	}
	return &UsernameCache{client: client, ttl: ttl}
}

// Lookup returns the cached answer. found is false on a cache miss.
func (c *UsernameCache) Lookup(ctx context.Context, username string) (taken, found bool, err error) {
	val, err := c.client.Get(ctx, c.key(username)).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, fmt.Errorf("username cache get: %w", err)
	}
	return val == "1", true, nil
}

// Store records the answer for username until the TTL elapses.
func (c *UsernameCache) Store(ctx context.Context, username string, taken bool) error {
	val := "0"
	if taken {
		val = "1"
	}
	if err := c.client.Set(ctx, c.key(username), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("username cache set: %w", err)
	}
	return nil
}

// Forget drops the cached answer, e.g. after the username was claimed.
func (c *UsernameCache) Forget(ctx context.Context, username string) error {
	return c.client.Del(ctx, c.key(username)).Err()
}

func (c *UsernameCache) key(username string) string {
	return "username:" + username
}
