package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/inkwell/posts-api/internal/core/domain"
	"github.com/inkwell/posts-api/internal/core/policy"
	"github.com/inkwell/posts-api/internal/core/ports"
)

// VoteService moves a (post, user) pair between the no-vote and voted states.
type VoteService struct {
	posts  ports.PostRepository
	votes  ports.VoteRepository
	logger zerolog.Logger
}

func NewVoteService(posts ports.PostRepository, votes ports.VoteRepository, logger zerolog.Logger) *VoteService {
	return &VoteService{posts: posts, votes: votes, logger: logger}
}

func (s *VoteService) AddVote(ctx context.Context, postID string, actor *domain.User) error {
	if err := s.authorize(ctx, postID, actor); err != nil {
		return err
	}

	exists, err := s.votes.Exists(ctx, postID, actor.ID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrAlreadyVoted
	}
	// A racing insert still surfaces as ErrAlreadyVoted from the store.
	if err := s.votes.Create(ctx, domain.Vote{PostID: postID, UserID: actor.ID}); err != nil {
		return err
	}

	s.logger.Debug().Str("post_id", postID).Str("user_id", actor.ID).Msg("vote added")
	return nil
}

func (s *VoteService) RemoveVote(ctx context.Context, postID string, actor *domain.User) error {
	if err := s.authorize(ctx, postID, actor); err != nil {
		return err
	}

	exists, err := s.votes.Exists(ctx, postID, actor.ID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrVoteNotFound
	}
	if err := s.votes.Delete(ctx, postID, actor.ID); err != nil {
		return err
	}

	s.logger.Debug().Str("post_id", postID).Str("user_id", actor.ID).Msg("vote removed")
	return nil
}

func (s *VoteService) authorize(ctx context.Context, postID string, actor *domain.User) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if !policy.CanVote(post, actor) {
		return domain.ErrForbidden
	}
	return nil
}
