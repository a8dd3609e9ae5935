package ports

import (
	"context"

	"github.com/photogram/photogram-api/internal/core/domain"
)

// Navigator moves the client to another view once a flow completes.
type Navigator interface {
	Navigate(path string)
}

// NavigatorFunc adapts a plain function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Navigate(path string) { f(path) }

// SignUpService drives server-held sign-up forms. Change records a value
// while the user types; Blur records and validates it.
type SignUpService interface {
	Start(ctx context.Context) (*domain.FormState, error)
	Get(ctx context.Context, id string) (*domain.FormState, error)
	Change(ctx context.Context, id string, field domain.Field, value string) (*domain.FormState, error)
	Blur(ctx context.Context, id string, field domain.Field, value string) (*domain.FormState, error)
	Submit(ctx context.Context, id string) (*domain.FormState, error)
	// SignUp validates and submits a complete payload in one call.
	SignUp(ctx context.Context, input domain.SignUpInput) (*domain.User, error)
}
