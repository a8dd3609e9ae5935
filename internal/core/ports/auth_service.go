package ports

import (
	"context"

	"github.com/photogram/photogram-api/internal/core/domain"
)

// AuthProvider creates accounts. Failures carry a *domain.AuthError when they
// originate in the provider itself.
type AuthProvider interface {
	SignUpWithEmailAndPassword(ctx context.Context, input domain.SignUpInput) (*domain.User, error)
}

type AuthService interface {
	AuthProvider
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
