package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/photogram/photogram-api/internal/core/ports"
	"github.com/photogram/photogram-api/internal/pkg/metrics"
)

// UsernameCache remembers recent uniqueness answers.
type UsernameCache interface {
	Lookup(ctx context.Context, username string) (taken, found bool, err error)
	Store(ctx context.Context, username string, taken bool) error
	Forget(ctx context.Context, username string) error
}

// usernameForgetter is implemented by checkers that hold cached answers.
type usernameForgetter interface {
	Forget(ctx context.Context, username string)
}

// forgetUsername drops any cached answer for username once the store has
// changed underneath it.
func forgetUsername(ctx context.Context, checker ports.UsernameChecker, username string) {
	if f, ok := checker.(usernameForgetter); ok {
		f.Forget(ctx, username)
	}
}

// CachedUsernameChecker consults the cache before the store. Cache failures
// are logged and fall through to the store.
type CachedUsernameChecker struct {
	store  ports.UsernameChecker
	cache  UsernameCache
	logger zerolog.Logger
}

func NewCachedUsernameChecker(store ports.UsernameChecker, cache UsernameCache, logger zerolog.Logger) *CachedUsernameChecker {
	return &CachedUsernameChecker{store: store, cache: cache, logger: logger}
}

func (c *CachedUsernameChecker) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	if c.cache != nil {
		taken, found, err := c.cache.Lookup(ctx, username)
		switch {
		case err != nil:
			c.logger.Warn().Err(err).Msg("username cache lookup failed")
		case found:
			metrics.UsernameChecksTotal.WithLabelValues("cache", availability(taken)).Inc()
			return taken, nil
		}
	}

	taken, err := c.store.IsUsernameTaken(ctx, username)
	if err != nil {
		metrics.UsernameChecksTotal.WithLabelValues("store", "error").Inc()
		return false, err
	}
	metrics.UsernameChecksTotal.WithLabelValues("store", availability(taken)).Inc()

	if c.cache != nil {
		if err := c.cache.Store(ctx, username, taken); err != nil {
			c.logger.Warn().Err(err).Msg("username cache store failed")
		}
	}
	return taken, nil
}

// Forget evicts the cached answer for username.
func (c *CachedUsernameChecker) Forget(ctx context.Context, username string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Forget(ctx, username); err != nil {
		c.logger.Warn().Err(err).Str("username", username).Msg("username cache forget failed")
	}
}

func availability(taken bool) string {
	if taken {
		return "taken"
	}
	return "available"
}
