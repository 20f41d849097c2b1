package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/inkwell/posts-api/internal/core/domain"
	"github.com/inkwell/posts-api/internal/core/ports"
)

// AuthService checks email/password pairs. Issuing the token is left to the
// caller so this step can be exercised without a signing key.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, logger: logger}
}

// Authenticate returns domain.ErrUserNotFound for an unknown email and
// domain.ErrInvalidPassword for a hash mismatch.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Debug().Str("user_id", user.ID).Msg("password mismatch")
		return nil, domain.ErrInvalidPassword
	}
	return user, nil
}
