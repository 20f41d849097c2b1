// Package usecase composes services, policies and security primitives into
// one operation per endpoint. Domain errors propagate unchanged; mapping them
// to transport codes is the HTTP layer's job.
package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/inkwell/posts-api/internal/core/domain"
	"github.com/inkwell/posts-api/internal/core/ports"
)

// Auth implements ports.AuthUseCase.
type Auth struct {
	auth   ports.AuthService
	users  ports.UserService
	tokens ports.TokenProvider
	cache  ports.UserCache
	logger zerolog.Logger
}

// NewAuth wires the login flow. cache may be nil, in which case every bearer
// resolution reads the user from the store.
func NewAuth(auth ports.AuthService, users ports.UserService, tokens ports.TokenProvider, cache ports.UserCache, logger zerolog.Logger) *Auth {
	if cache == nil {
		cache = nopCache{}
	}
	return &Auth{auth: auth, users: users, tokens: tokens, cache: cache, logger: logger}
}

// Login authenticates and issues a bearer token for the user.
func (a *Auth) Login(ctx context.Context, email, password string) (*domain.Token, error) {
	user, err := a.auth.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	signed, err := a.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	a.logger.Info().Str("user_id", user.ID).Msg("login succeeded")
	return &domain.Token{AccessToken: signed, TokenType: domain.TokenTypeBearer}, nil
}

// ResolveUser turns a bearer token into the current user. A valid token whose
// user no longer exists is reported as domain.ErrInvalidCredentials.
func (a *Auth) ResolveUser(ctx context.Context, token string) (*domain.User, error) {
	userID, err := a.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	cached, err := a.cache.Get(ctx, userID)
	if err != nil {
		a.logger.Warn().Err(err).Str("user_id", userID).Msg("user cache read failed")
	}
	if cached != nil {
		return cached, nil
	}

	user, err := a.users.GetByID(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := a.cache.Set(ctx, user); err != nil {
		a.logger.Warn().Err(err).Str("user_id", userID).Msg("user cache write failed")
	}
	return user, nil
}

type nopCache struct{}

func (nopCache) Get(context.Context, string) (*domain.User, error) { return nil, nil }
func (nopCache) Set(context.Context, *domain.User) error           { return nil }
