package service

import (
	"context"
	"io"
	"sync"

	"github.com/google/uuid"

	"github.com/photogram/photogram-api/internal/core/domain"
)

// stubChecker answers uniqueness checks from a fixed set of taken names.
// Names listed in block wait on their channel before answering.
type stubChecker struct {
	mu      sync.Mutex
	taken   map[string]bool
	err     error
	block   map[string]chan struct{}
	entered chan string
	calls   []string
}

func newStubChecker(taken ...string) *stubChecker {
	c := &stubChecker{taken: make(map[string]bool), block: make(map[string]chan struct{})}
	for _, name := range taken {
		c.taken[name] = true
	}
	return c
}

func (c *stubChecker) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	c.mu.Lock()
	c.calls = append(c.calls, username)
	gate := c.block[username]
	entered := c.entered
	c.mu.Unlock()

	if gate != nil {
		if entered != nil {
			entered <- username
		}
		select {
		case <-gate:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return false, c.err
	}
	return c.taken[username], nil
}

func (c *stubChecker) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

// stubProvider records sign-up inputs and returns a canned result.
type stubProvider struct {
	mu     sync.Mutex
	inputs []domain.SignUpInput
	err    error
	gate   chan struct{}
	inside chan struct{}
}

func (p *stubProvider) SignUpWithEmailAndPassword(ctx context.Context, input domain.SignUpInput) (*domain.User, error) {
	p.mu.Lock()
	p.inputs = append(p.inputs, input)
	gate, inside, err := p.gate, p.inside, p.err
	p.mu.Unlock()

	if gate != nil {
		if inside != nil {
			close(inside)
		}
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return &domain.User{UserID: "11111111-1111-1111-1111-111111111111", Username: input.Username, Email: input.Email, Name: input.Name}, nil
}

func (p *stubProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.inputs)
}

// stubGraph records every mutation it receives.
type stubGraph struct {
	mu       sync.Mutex
	users    []*domain.User
	profiles []domain.Profile
	avatars  map[string]string
	posts    []domain.Post
	comments []domain.Comment
	calls    []string
	err      error

	// profileIDs maps auth uids to the row keys handed out by CreateUser.
	profileIDs map[string]string
	profileErr error
}

func newStubGraph() *stubGraph {
	return &stubGraph{avatars: make(map[string]string), profileIDs: make(map[string]string)}
}

func (g *stubGraph) record(call string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, call)
	return g.err
}

func (g *stubGraph) IsUsernameTaken(_ context.Context, username string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, u := range g.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (g *stubGraph) CreateUser(_ context.Context, user *domain.User) (int, error) {
	if err := g.record("createUser"); err != nil {
		return 0, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	clone := *user
	g.users = append(g.users, &clone)
	g.profileIDs[user.UserID] = uuid.NewString()
	return 1, nil
}

func (g *stubGraph) ProfileID(_ context.Context, userID string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.profileErr != nil {
		return "", g.profileErr
	}
	id, ok := g.profileIDs[userID]
	if !ok {
		return "", domain.ErrUserNotFound
	}
	return id, nil
}

func (g *stubGraph) EditUser(_ context.Context, profile domain.Profile) (int, error) {
	if err := g.record("editUser"); err != nil {
		return 0, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.profiles = append(g.profiles, profile)
	return 1, nil
}

func (g *stubGraph) EditUserAvatar(_ context.Context, id, profileImage string) (int, error) {
	if err := g.record("editUserAvatar"); err != nil {
		return 0, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.avatars[id] = profileImage
	return 1, nil
}

func (g *stubGraph) CreatePost(_ context.Context, post domain.Post) (int, error) {
	if err := g.record("createPost"); err != nil {
		return 0, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.posts = append(g.posts, post)
	return 1, nil
}

func (g *stubGraph) LikePost(context.Context, string, string) (int, error) {
	return 1, g.record("likePost")
}

func (g *stubGraph) UnlikePost(context.Context, string, string) (int, error) {
	return 1, g.record("unlikePost")
}

func (g *stubGraph) SavePost(context.Context, string, string) (int, error) {
	return 1, g.record("savePost")
}

func (g *stubGraph) UnsavePost(context.Context, string, string) (int, error) {
	return 1, g.record("unsavePost")
}

func (g *stubGraph) CreateComment(_ context.Context, comment domain.Comment) (int, error) {
	if err := g.record("createComment"); err != nil {
		return 0, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.comments = append(g.comments, comment)
	return 1, nil
}

// stubMediaStore keeps uploaded objects in memory.
type stubMediaStore struct {
	objects map[string][]byte
	types   map[string]string
	err     error
}

func newStubMediaStore() *stubMediaStore {
	return &stubMediaStore{objects: make(map[string][]byte), types: make(map[string]string)}
}

func (m *stubMediaStore) Upload(_ context.Context, key string, r io.Reader, _ int64, contentType string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.objects[key] = body
	m.types[key] = contentType
	return "https://media.test/photogram/" + key, nil
}
