package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/photogram/photogram-api/internal/core/domain"
)

const testAvatar = "https://media.test/photogram/default-avatar.png"

type stubAuthRepo struct {
	users   map[string]*domain.User
	deleted []string
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Email
	}
	r.users[copy.Email] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.users[email]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubAuthRepo) DeleteByEmail(_ context.Context, email string) error {
	r.deleted = append(r.deleted, email)
	delete(r.users, email)
	return nil
}

func (r *stubAuthRepo) SetProfileID(_ context.Context, email, profileID string) error {
	u, ok := r.users[email]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ProfileID = profileID
	return nil
}

func newTestAuthService(repo *stubAuthRepo, graph *stubGraph) *AuthService {
	return NewAuthService(repo, graph, "secret", time.Hour, testAvatar, zerolog.Nop())
}

func signUpInput(email, username, password string) domain.SignUpInput {
	return domain.SignUpInput{Email: email, Name: "Test User", Username: username, Password: password}
}

func TestAuthService_SignUp_Success(t *testing.T) {
	repo := newStubAuthRepo()
	graph := newStubGraph()
	svc := newTestAuthService(repo, graph)

	user, err := svc.SignUpWithEmailAndPassword(context.Background(), signUpInput(" Alice@Example.com ", "alice_1", "pass123"))
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected normalised email, got %q", user.Email)
	}
	if user.UserID == "" {
		t.Fatalf("expected generated user id")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}

	if len(graph.users) != 1 {
		t.Fatalf("expected profile to be created, got %d", len(graph.users))
	}
	profile := graph.users[0]
	if profile.UserID != user.UserID || profile.ProfileImage != testAvatar || profile.Bio != "" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
	if user.ProfileID == "" || user.ProfileID != graph.profileIDs[user.UserID] {
		t.Fatalf("expected row key %q, got %q", graph.profileIDs[user.UserID], user.ProfileID)
	}
	if stored := repo.users["alice@example.com"]; stored.ProfileID != user.ProfileID {
		t.Fatalf("expected row key on the credential, got %q", stored.ProfileID)
	}
}

func TestAuthService_SignUp_ProviderErrors(t *testing.T) {
	cases := []struct {
		name     string
		input    domain.SignUpInput
		wantCode string
	}{
		{"invalid email", signUpInput("alice", "alice_1", "pass123"), domain.AuthCodeInvalidEmail},
		{"weak password", signUpInput("alice@example.com", "alice_1", "12345"), domain.AuthCodeWeakPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			graph := newStubGraph()
			svc := newTestAuthService(newStubAuthRepo(), graph)

			_, err := svc.SignUpWithEmailAndPassword(context.Background(), tc.input)
			var authErr *domain.AuthError
			if !errors.As(err, &authErr) || authErr.Code != tc.wantCode {
				t.Fatalf("expected %s, got %v", tc.wantCode, err)
			}
			if len(graph.calls) != 0 {
				t.Fatalf("expected no store calls, got %v", graph.calls)
			}
		})
	}
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, newStubGraph())

	_, _ = svc.SignUpWithEmailAndPassword(context.Background(), signUpInput("bob@example.com", "bob_one", "pass123"))
	_, err := svc.SignUpWithEmailAndPassword(context.Background(), signUpInput("bob@example.com", "bob_two", "pass456"))

	var authErr *domain.AuthError
	if !errors.As(err, &authErr) || authErr.Code != domain.AuthCodeEmailInUse {
		t.Fatalf("expected email-already-in-use, got %v", err)
	}
}

func TestAuthService_SignUp_ProfileFailureRollsBack(t *testing.T) {
	repo := newStubAuthRepo()
	graph := newStubGraph()
	graph.err = fmt.Errorf("graphql createUser: %w", domain.ErrUsernameTaken)
	svc := newTestAuthService(repo, graph)

	_, err := svc.SignUpWithEmailAndPassword(context.Background(), signUpInput("carol@example.com", "carol_1", "pass123"))
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken to be preserved, got %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "carol@example.com" {
		t.Fatalf("expected credential rollback, got %v", repo.deleted)
	}
	if _, err := repo.FindByEmail(context.Background(), "carol@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected credential to be removed, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, newStubGraph())

	created, err := svc.SignUpWithEmailAndPassword(context.Background(), signUpInput("carol@example.com", "carol_1", "s3cret"))
	if err != nil {
		t.Fatalf("sign-up failed: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
	if user == nil || user.Username != "carol_1" {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["user_id"] != created.ProfileID || claims["user_id"] == created.UserID {
		t.Fatalf("expected user_id to be the row key %s, got %v", created.ProfileID, claims["user_id"])
	}
	if claims["uid"] != created.UserID {
		t.Fatalf("expected uid %s, got %v", created.UserID, claims["uid"])
	}
}

func TestAuthService_Login_ResolvesMissingProfileID(t *testing.T) {
	repo := newStubAuthRepo()
	graph := newStubGraph()
	graph.profileErr = errors.New("graphql unavailable")
	svc := newTestAuthService(repo, graph)

	created, err := svc.SignUpWithEmailAndPassword(context.Background(), signUpInput("erin@example.com", "erin_1", "s3cret"))
	if err != nil {
		t.Fatalf("sign-up should survive a failed lookup: %v", err)
	}
	if created.ProfileID != "" {
		t.Fatalf("expected no row key yet, got %q", created.ProfileID)
	}

	if _, _, err := svc.Login(context.Background(), "erin@example.com", "s3cret"); err == nil {
		t.Fatalf("expected login to fail while the row key cannot be resolved")
	}

	graph.profileErr = nil
	_, user, err := svc.Login(context.Background(), "erin@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ProfileID != graph.profileIDs[created.UserID] || repo.users["erin@example.com"].ProfileID != user.ProfileID {
		t.Fatalf("expected row key to be resolved and stored, got %q", user.ProfileID)
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, newStubGraph())

	_, _ = svc.SignUpWithEmailAndPassword(context.Background(), signUpInput("dave@example.com", "dave_1", "goodpass"))
	if _, _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := newTestAuthService(newStubAuthRepo(), newStubGraph())

	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
