package ports

import (
	"context"

	"github.com/inkwell/posts-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	// Create persists user. Returns domain.ErrEmailAlreadyExists when the
	// store rejects the email as a duplicate.
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserCache stores resolved users for the lifetime of a token.
// A miss returns (nil, nil).
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.User, error)
	Set(ctx context.Context, user *domain.User) error
}
