package ports

import (
	"context"

	"github.com/photogram/photogram-api/internal/core/domain"
)

// CredentialRepository stores email/password credentials for the auth provider.
type CredentialRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// DeleteByEmail removes a credential; used to undo a sign-up whose profile
	// could not be created in the GraphQL store.
	DeleteByEmail(ctx context.Context, email string) error
	// SetProfileID records the users.id row key once the profile exists.
	SetProfileID(ctx context.Context, email, profileID string) error
}
