package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkwell/posts-api/internal/core/domain"
)

func TestVotes_DirectionDispatch(t *testing.T) {
	svc := &stubVoteService{}
	uc := NewVotes(svc)
	actor := &domain.User{ID: "u1", IsActive: true}

	assert.NoError(t, uc.Vote(context.Background(), "p1", domain.VoteAdd, actor))
	assert.NoError(t, uc.Vote(context.Background(), "p1", domain.VoteRemove, actor))
	assert.Error(t, uc.Vote(context.Background(), "p1", 2, actor))

	assert.Equal(t, 1, svc.added)
	assert.Equal(t, 1, svc.removed)
}
