package postgres

import (
	"context"

	"github.com/inkwell/posts-api/internal/core/domain"
)

// VoteRepository implements ports.VoteRepository over the votes table,
// whose composite primary key enforces one vote per (post, user).
type VoteRepository struct {
	db Querier
}

func NewVoteRepository(db Querier) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) Exists(ctx context.Context, postID, userID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM votes WHERE post_id = $1 AND user_id = $2)`,
		postID, userID,
	).Scan(&exists)
	if err != nil {
		return false, translate(err, nil, nil)
	}
	return exists, nil
}

func (r *VoteRepository) Create(ctx context.Context, vote domain.Vote) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO votes (post_id, user_id) VALUES ($1, $2)`,
		vote.PostID, vote.UserID,
	)
	if pgCode(err) == codeForeignKeyViolation {
		return domain.ErrPostNotFound
	}
	return translate(err, nil, domain.ErrAlreadyVoted)
}

func (r *VoteRepository) Delete(ctx context.Context, postID, userID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM votes WHERE post_id = $1 AND user_id = $2`,
		postID, userID,
	)
	if err != nil {
		return translate(err, nil, nil)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVoteNotFound
	}
	return nil
}
