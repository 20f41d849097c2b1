package ports

import (
	"context"

	"github.com/inkwell/posts-api/internal/core/domain"
)

// AuthUseCase is what the HTTP layer needs for login and bearer resolution.
type AuthUseCase interface {
	Login(ctx context.Context, email, password string) (*domain.Token, error)
	ResolveUser(ctx context.Context, token string) (*domain.User, error)
}

// UserUseCase backs the /users endpoints.
type UserUseCase interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
}

// PostUseCase backs the /posts endpoints.
type PostUseCase interface {
	List(ctx context.Context, input ListPostsInput) ([]domain.PostWithVotes, error)
	Create(ctx context.Context, input CreatePostInput, actor *domain.User) (*domain.Post, error)
	Get(ctx context.Context, id string) (*domain.PostWithVotes, error)
	Update(ctx context.Context, id string, patch domain.PostPatch, actor *domain.User) (*domain.Post, error)
	Delete(ctx context.Context, id string, actor *domain.User) error
}

// VoteUseCase backs POST /votes.
type VoteUseCase interface {
	Vote(ctx context.Context, postID string, direction int, actor *domain.User) error
}
