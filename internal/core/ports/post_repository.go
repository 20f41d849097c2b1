package ports

import (
	"context"

	"github.com/inkwell/posts-api/internal/core/domain"
)

// ListPostsFilter carries the already-validated listing parameters.
type ListPostsFilter struct {
	Search string // optional: case-insensitive substring of title
	Page   int    // 1-based
	Size   int
}

// Offset returns the number of rows skipped before this page.
func (f ListPostsFilter) Offset() int {
	return (f.Page - 1) * f.Size
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	// List returns one page of posts with their vote counts. Posts without
	// votes are included with a zero count.
	List(ctx context.Context, filter ListPostsFilter) ([]domain.PostWithVotes, error)
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	FindWithVotes(ctx context.Context, id string) (*domain.PostWithVotes, error)
	// Update writes only the fields set in patch and returns the stored post.
	Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error)
	// Delete removes the post and, through the store, its votes.
	Delete(ctx context.Context, id string) error
}
