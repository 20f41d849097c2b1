package ports

import (
	"context"

	"github.com/inkwell/posts-api/internal/core/domain"
)

// VoteRepository persists (post, user) vote rows.
type VoteRepository interface {
	Exists(ctx context.Context, postID, userID string) (bool, error)
	// Create returns domain.ErrAlreadyVoted when the pair already exists.
	Create(ctx context.Context, vote domain.Vote) error
	// Delete returns domain.ErrVoteNotFound when no row was removed.
	Delete(ctx context.Context, postID, userID string) error
}
