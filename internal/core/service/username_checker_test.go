package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/photogram/photogram-api/internal/core/domain"
)

type memoryUsernameCache struct {
	entries   map[string]bool
	lookupErr error
	stores    int
	forgotten []string
}

func (c *memoryUsernameCache) Lookup(_ context.Context, username string) (bool, bool, error) {
	if c.lookupErr != nil {
		return false, false, c.lookupErr
	}
	taken, ok := c.entries[username]
	return taken, ok, nil
}

func (c *memoryUsernameCache) Store(_ context.Context, username string, taken bool) error {
	c.stores++
	c.entries[username] = taken
	return nil
}

func (c *memoryUsernameCache) Forget(_ context.Context, username string) error {
	c.forgotten = append(c.forgotten, username)
	delete(c.entries, username)
	return nil
}

func TestCachedUsernameChecker_HitSkipsStore(t *testing.T) {
	store := newStubChecker()
	cache := &memoryUsernameCache{entries: map[string]bool{"jane_doe": true}}
	checker := NewCachedUsernameChecker(store, cache, zerolog.Nop())

	taken, err := checker.IsUsernameTaken(context.Background(), "jane_doe")
	if err != nil || !taken {
		t.Fatalf("expected cached taken answer, got %v %v", taken, err)
	}
	if store.callCount() != 0 {
		t.Fatalf("expected store not to be queried")
	}
}

func TestCachedUsernameChecker_MissFillsCache(t *testing.T) {
	store := newStubChecker("jane_doe")
	cache := &memoryUsernameCache{entries: map[string]bool{}}
	checker := NewCachedUsernameChecker(store, cache, zerolog.Nop())

	for i := 0; i < 2; i++ {
		taken, err := checker.IsUsernameTaken(context.Background(), "jane_doe")
		if err != nil || !taken {
			t.Fatalf("expected taken, got %v %v", taken, err)
		}
	}
	if store.callCount() != 1 || cache.stores != 1 {
		t.Fatalf("expected one store query and one cache write, got %d and %d", store.callCount(), cache.stores)
	}
}

func TestCachedUsernameChecker_CacheErrorFallsThrough(t *testing.T) {
	store := newStubChecker()
	cache := &memoryUsernameCache{entries: map[string]bool{}, lookupErr: errors.New("redis down")}
	checker := NewCachedUsernameChecker(store, cache, zerolog.Nop())

	taken, err := checker.IsUsernameTaken(context.Background(), "free_name")
	if err != nil || taken {
		t.Fatalf("expected available, got %v %v", taken, err)
	}
	if store.callCount() != 1 {
		t.Fatalf("expected store to be queried")
	}
}

func TestCachedUsernameChecker_StoreErrorNotCached(t *testing.T) {
	store := newStubChecker()
	store.err = errors.New("graphql down")
	cache := &memoryUsernameCache{entries: map[string]bool{}}
	checker := NewCachedUsernameChecker(store, cache, zerolog.Nop())

	if _, err := checker.IsUsernameTaken(context.Background(), "jane_doe"); err == nil {
		t.Fatalf("expected error")
	}
	if cache.stores != 0 {
		t.Fatalf("expected failed answers not to be cached")
	}
}

func TestSignUpService_SuccessEvictsCachedAnswer(t *testing.T) {
	cache := &memoryUsernameCache{entries: map[string]bool{}}
	checker := NewCachedUsernameChecker(newStubChecker(), cache, zerolog.Nop())
	svc := NewSignUpService(checker, &stubProvider{}, 0, zerolog.Nop())

	input := domain.SignUpInput{Email: "jane@example.com", Name: "Jane Doe", Username: "jane_doe", Password: "secret1"}
	if _, err := svc.SignUp(context.Background(), input); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, cached := cache.entries[input.Username]; cached {
		t.Fatalf("expected the stale available answer to be evicted")
	}
	if len(cache.forgotten) != 1 || cache.forgotten[0] != input.Username {
		t.Fatalf("unexpected evictions: %v", cache.forgotten)
	}
}
