package usecase

import (
	"context"

	"github.com/inkwell/posts-api/internal/core/domain"
	"github.com/inkwell/posts-api/internal/core/ports"
)

// Users implements ports.UserUseCase.
type Users struct {
	users ports.UserService
}

func NewUsers(users ports.UserService) *Users {
	return &Users{users: users}
}

func (u *Users) Register(ctx context.Context, email, password string) (*domain.User, error) {
	return u.users.Register(ctx, email, password)
}

func (u *Users) Get(ctx context.Context, id string) (*domain.User, error) {
	return u.users.GetByID(ctx, id)
}
