package usecase

import (
	"context"
	"fmt"

	"github.com/inkwell/posts-api/internal/core/domain"
	"github.com/inkwell/posts-api/internal/core/ports"
)

// Votes implements ports.VoteUseCase.
type Votes struct {
	votes ports.VoteService
}

func NewVotes(votes ports.VoteService) *Votes {
	return &Votes{votes: votes}
}

// Vote adds the vote for direction 1 and removes it for direction 0.
func (v *Votes) Vote(ctx context.Context, postID string, direction int, actor *domain.User) error {
	switch direction {
	case domain.VoteAdd:
		return v.votes.AddVote(ctx, postID, actor)
	case domain.VoteRemove:
		return v.votes.RemoveVote(ctx, postID, actor)
	default:
		return fmt.Errorf("unknown vote direction %d", direction)
	}
}
