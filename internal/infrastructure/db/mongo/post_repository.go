package mongo

import (
	"context"
	"regexp"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/inkwell/posts-api/internal/core/domain"
	"github.com/inkwell/posts-api/internal/core/ports"
)

// PostRepository implements ports.PostRepository. Vote counts come from a
// $lookup on the votes collection, so posts without votes count zero.
type PostRepository struct {
	col   *mongo.Collection
	votes *mongo.Collection
	log   zerolog.Logger
}

func NewPostRepository(db *mongo.Database, log zerolog.Logger) *PostRepository {
	return &PostRepository{
		col:   db.Collection(collectionPosts),
		votes: db.Collection(collectionVotes),
		log:   log,
	}
}

type postDoc struct {
	ID        string    `bson:"_id"`
	OwnerID   string    `bson:"owner_id"`
	Title     string    `bson:"title"`
	Content   string    `bson:"content"`
	Published bool      `bson:"published"`
	Rating    *int      `bson:"rating"`
	CreatedAt time.Time `bson:"created_at"`
}

type postWithVotesDoc struct {
	Post  postDoc `bson:",inline"`
	Votes int64   `bson:"votes"`
}

func toPostDoc(p *domain.Post) postDoc {
	return postDoc{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Title:     p.Title,
		Content:   p.Content,
		Published: p.Published,
		Rating:    p.Rating,
		CreatedAt: p.CreatedAt.UTC(),
	}
}

func (d postDoc) toDomain() *domain.Post {
	return &domain.Post{
		ID:        d.ID,
		OwnerID:   d.OwnerID,
		Title:     d.Title,
		Content:   d.Content,
		Published: d.Published,
		Rating:    d.Rating,
		CreatedAt: d.CreatedAt.UTC(),
	}
}

// withVotesStages joins the vote rows and replaces them with their count.
func withVotesStages() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collectionVotes},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "post_id"},
			{Key: "as", Value: "votes"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "votes", Value: bson.D{{Key: "$size", Value: "$votes"}}},
		}}},
	}
}

// buildListPipeline pages before the $lookup so only one page of posts is joined.
func buildListPipeline(filter ports.ListPostsFilter) mongo.Pipeline {
	var pipeline mongo.Pipeline
	if filter.Search != "" {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.D{
			{Key: "title", Value: bson.D{
				{Key: "$regex", Value: regexp.QuoteMeta(filter.Search)},
				{Key: "$options", Value: "i"},
			}},
		}}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}}},
		bson.D{{Key: "$skip", Value: int64(filter.Offset())}},
		bson.D{{Key: "$limit", Value: int64(filter.Size)}},
	)
	return append(pipeline, withVotesStages()...)
}

// buildUpdate returns the $set document for the supplied fields; nil for an empty patch.
func buildUpdate(patch domain.PostPatch) bson.D {
	var set bson.D
	if patch.Title.Set {
		set = append(set, bson.E{Key: "title", Value: patch.Title.Value})
	}
	if patch.Content.Set {
		set = append(set, bson.E{Key: "content", Value: patch.Content.Value})
	}
	if patch.Published.Set {
		set = append(set, bson.E{Key: "published", Value: patch.Published.Value})
	}
	if patch.Rating.Set {
		set = append(set, bson.E{Key: "rating", Value: patch.Rating.Value})
	}
	if len(set) == 0 {
		return nil
	}
	return bson.D{{Key: "$set", Value: set}}
}

func (r *PostRepository) List(ctx context.Context, filter ports.ListPostsFilter) ([]domain.PostWithVotes, error) {
	return r.aggregate(ctx, buildListPipeline(filter))
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, toPostDoc(post))
	return translate(err, nil, nil)
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc postDoc
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, translate(err, domain.ErrPostNotFound, nil)
	}
	return doc.toDomain(), nil
}

func (r *PostRepository) FindWithVotes(ctx context.Context, id string) (*domain.PostWithVotes, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
	}, withVotesStages()...)

	out, err := r.aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, domain.ErrPostNotFound
	}
	return &out[0], nil
}

func (r *PostRepository) Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error) {
	update := buildUpdate(patch)
	if update == nil {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc postDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, translate(err, domain.ErrPostNotFound, nil)
	}
	return doc.toDomain(), nil
}

// Delete removes the post and then its votes. Without a foreign key the
// cascade is done here.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	return cascadeDelete(ctx, id, r.log,
		func(ctx context.Context) error {
			res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
			if err != nil {
				return translate(err, nil, nil)
			}
			if res.DeletedCount == 0 {
				return domain.ErrPostNotFound
			}
			return nil
		},
		func(ctx context.Context) error {
			_, err := r.votes.DeleteMany(ctx, bson.M{"post_id": id})
			return err
		},
	)
}

// cascadeDelete reports only the outcome of deletePost. Once the post is gone
// the delete has happened; leftover votes reference an id that is never
// reused and never reach a $lookup, so a failed cleanup is logged.
func cascadeDelete(ctx context.Context, id string, log zerolog.Logger, deletePost, deleteVotes func(context.Context) error) error {
	postCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	if err := deletePost(postCtx); err != nil {
		return err
	}

	votesCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultTimeout)
	defer cancel()
	if err := deleteVotes(votesCtx); err != nil {
		log.Warn().Err(err).Str("post_id", id).Msg("orphaned votes left after post delete")
	}
	return nil
}

func (r *PostRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]domain.PostWithVotes, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, translate(err, nil, nil)
	}
	defer cur.Close(ctx)

	var docs []postWithVotesDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, translate(err, nil, nil)
	}

	out := make([]domain.PostWithVotes, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.PostWithVotes{Post: *d.Post.toDomain(), Votes: d.Votes})
	}
	return out, nil
}

func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	})
	return err
}
