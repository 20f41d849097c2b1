package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell/posts-api/internal/core/domain"
)

// VoteRepository implements ports.VoteRepository. A unique compound index on
// (post_id, user_id) keeps at most one vote per pair.
type VoteRepository struct {
	col *mongo.Collection
}

func NewVoteRepository(db *mongo.Database) *VoteRepository {
	return &VoteRepository{col: db.Collection(collectionVotes)}
}

type voteDoc struct {
	PostID string `bson:"post_id"`
	UserID string `bson:"user_id"`
}

func voteFilter(postID, userID string) bson.D {
	return bson.D{{Key: "post_id", Value: postID}, {Key: "user_id", Value: userID}}
}

func (r *VoteRepository) Exists(ctx context.Context, postID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, voteFilter(postID, userID), options.Count().SetLimit(1))
	if err != nil {
		return false, translate(err, nil, nil)
	}
	return n > 0, nil
}

func (r *VoteRepository) Create(ctx context.Context, vote domain.Vote) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, voteDoc{PostID: vote.PostID, UserID: vote.UserID})
	return translate(err, nil, domain.ErrAlreadyVoted)
}

func (r *VoteRepository) Delete(ctx context.Context, postID, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, voteFilter(postID, userID))
	if err != nil {
		return translate(err, nil, nil)
	}
	if res.DeletedCount == 0 {
		return domain.ErrVoteNotFound
	}
	return nil
}

func (r *VoteRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "post_id", Value: 1}, {Key: "user_id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("votes_post_user_key"),
	})
	return err
}
