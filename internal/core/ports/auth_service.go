package ports

import (
	"context"

	"github.com/hydrostat/auth-service/internal/core/domain"
)

// RegisterInput carries the validated-at-the-engine registration fields.
// Role may be empty, in which case the configured default applies.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, *domain.TokenPair, error)
	Login(ctx context.Context, email, password string) (*domain.User, *domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	Authenticate(ctx context.Context, authHeader string) (*domain.Identity, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}
