package ports

import (
	"context"

	"github.com/inkwell/posts-api/internal/core/domain"
)

// UserService covers account registration and lookup.
type UserService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// AuthService checks email/password credentials.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}

// ListPostsInput is the raw listing request; the service validates it.
type ListPostsInput struct {
	Page   int
	Size   int
	Search string
}

// CreatePostInput carries the fields of a new post.
type CreatePostInput struct {
	Title     string
	Content   string
	Published bool
	Rating    *int
}

// PostService covers post CRUD with ownership checks.
type PostService interface {
	List(ctx context.Context, input ListPostsInput) ([]domain.PostWithVotes, error)
	Create(ctx context.Context, input CreatePostInput, actor *domain.User) (*domain.Post, error)
	GetByID(ctx context.Context, id string) (*domain.PostWithVotes, error)
	Update(ctx context.Context, id string, patch domain.PostPatch, actor *domain.User) (*domain.Post, error)
	Delete(ctx context.Context, id string, actor *domain.User) error
}

// VoteService toggles a single vote per (post, user).
type VoteService interface {
	AddVote(ctx context.Context, postID string, actor *domain.User) error
	RemoveVote(ctx context.Context, postID string, actor *domain.User) error
}
