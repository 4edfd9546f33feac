package ports

import (
	"context"

	"github.com/hydrostat/auth-service/internal/core/domain"
)

// UserRepository defines the interface for identity persistence. The store
// must enforce email uniqueness itself (unique index) so concurrent
// registrations race safely; a duplicate insert returns domain.ErrUserExists.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
