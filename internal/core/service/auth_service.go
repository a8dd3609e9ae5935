package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/photogram/photogram-api/internal/core/domain"
	"github.com/photogram/photogram-api/internal/core/ports"
)

const minProviderPasswordLength = 6

// AuthService is the email/password auth provider. Credentials live in the
// credential repository; the public profile is created in the social graph.
type AuthService struct {
	repo          ports.CredentialRepository
	graph         ports.SocialGraph
	validate      *validator.Validate
	jwtSecret     string
	tokenTTL      time.Duration
	defaultAvatar string
	logger        zerolog.Logger
}

func NewAuthService(repo ports.CredentialRepository, graph ports.SocialGraph, jwtSecret string, tokenTTL time.Duration, defaultAvatar string, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:          repo,
		graph:         graph,
		validate:      validator.New(),
		jwtSecret:     jwtSecret,
		tokenTTL:      tokenTTL,
		defaultAvatar: defaultAvatar,
		logger:        logger,
	}
}

// SignUpWithEmailAndPassword creates the credential and then the profile row.
// If the profile cannot be written the credential is removed again and the
// store error is returned unchanged.
func (s *AuthService) SignUpWithEmailAndPassword(ctx context.Context, input domain.SignUpInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, domain.NewAuthError(domain.AuthCodeInvalidEmail, "The email address is badly formatted.")
	}
	if len(input.Password) < minProviderPasswordLength {
		return nil, domain.NewAuthError(domain.AuthCodeWeakPassword, "Password should be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewAuthError(domain.AuthCodeInternal, "An internal error has occurred.")
	}

	now := time.Now().UTC()
	user := &domain.User{
		UserID:       uuid.NewString(),
		Username:     input.Username,
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hash),
		ProfileImage: s.defaultAvatar,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, domain.NewAuthError(domain.AuthCodeEmailInUse, "The email address is already in use by another account.")
		}
		return nil, fmt.Errorf("store credential: %w", err)
	}

	if _, err := s.graph.CreateUser(ctx, user); err != nil {
		if delErr := s.repo.DeleteByEmail(ctx, email); delErr != nil {
			s.logger.Error().Err(delErr).Str("email", email).Msg("failed to roll back credential")
		}
		return nil, fmt.Errorf("create user profile: %w", err)
	}

	created.ProfileImage = user.ProfileImage
	if err := s.resolveProfileID(ctx, created); err != nil {
		// The profile exists; Login resolves the key again.
		s.logger.Warn().Err(err).Str("user_id", created.UserID).Msg("profile id not resolved at sign-up")
	}
	s.logger.Info().
		Str("user_id", created.UserID).
		Str("profile_id", created.ProfileID).
		Str("username", created.Username).
		Msg("account created")
	return created, nil
}

// resolveProfileID looks up the users.id row key for user and stores it on
// the credential.
func (s *AuthService) resolveProfileID(ctx context.Context, user *domain.User) error {
	profileID, err := s.graph.ProfileID(ctx, user.UserID)
	if err != nil {
		return fmt.Errorf("lookup profile id: %w", err)
	}
	if err := s.repo.SetProfileID(ctx, user.Email, profileID); err != nil {
		return fmt.Errorf("store profile id: %w", err)
	}
	user.ProfileID = profileID
	return nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if user.ProfileID == "" {
		if err := s.resolveProfileID(ctx, user); err != nil {
			return "", nil, err
		}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// generateToken issues the session token. user_id carries the users.id row
// key, which is what every authenticated mutation writes.
func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ProfileID,
		"uid":      user.UserID,
		"username": user.Username,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
