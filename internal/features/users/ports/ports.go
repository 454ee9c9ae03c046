package ports

import (
	"context"

	"storefront-api/internal/features/users/domain"
)

// UserService exposes account registration and login to the HTTP layer.
type UserService interface {
	Register(ctx context.Context, username, email, password, role string) error
	// Login returns the authenticated user and a signed access token.
	Login(ctx context.Context, username, password string) (*domain.User, string, error)
}

// UserRepository is the storage contract for dashboard accounts. It also
// backs the admin middleware's account existence check.
type UserRepository interface {
	// GetByUsername returns (nil, nil) when no user matches.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, user domain.User) error
}
