package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/inkwell/posts-api/internal/core/domain"
	"github.com/inkwell/posts-api/internal/core/ports"
)

const postColumns = `id, owner_id, title, content, published, rating, created_at`

// PostRepository implements ports.PostRepository.
type PostRepository struct {
	db Querier
}

func NewPostRepository(db Querier) *PostRepository {
	return &PostRepository{db: db}
}

// buildListQuery returns the paginated listing with a per-post vote count.
// The LEFT JOIN keeps posts that have no votes.
func buildListQuery(filter ports.ListPostsFilter) (string, []any) {
	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`SELECT p.id, p.owner_id, p.title, p.content, p.published, p.rating, p.created_at, COUNT(v.user_id) AS votes
FROM posts p
LEFT JOIN votes v ON v.post_id = p.id`)

	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		fmt.Fprintf(&sb, "\nWHERE p.title ILIKE $%d", len(args))
	}

	sb.WriteString("\nGROUP BY p.id\nORDER BY p.created_at, p.id")

	args = append(args, filter.Size, filter.Offset())
	fmt.Fprintf(&sb, "\nLIMIT $%d OFFSET $%d", len(args)-1, len(args))

	return sb.String(), args
}

// escapeLike makes LIKE wildcards in user input match literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// buildUpdateQuery writes only the fields set in patch. ok is false for an
// empty patch.
func buildUpdateQuery(id string, patch domain.PostPatch) (query string, args []any, ok bool) {
	var sets []string
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title.Set {
		add("title", patch.Title.Value)
	}
	if patch.Content.Set {
		add("content", patch.Content.Value)
	}
	if patch.Published.Set {
		add("published", patch.Published.Value)
	}
	if patch.Rating.Set {
		add("rating", patch.Rating.Value)
	}
	if len(sets) == 0 {
		return "", nil, false
	}

	args = append(args, id)
	query = fmt.Sprintf("UPDATE posts SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), postColumns)
	return query, args, true
}

func (r *PostRepository) List(ctx context.Context, filter ports.ListPostsFilter) ([]domain.PostWithVotes, error) {
	query, args := buildListQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, nil, nil)
	}
	defer rows.Close()

	out := make([]domain.PostWithVotes, 0, filter.Size)
	for rows.Next() {
		var pv domain.PostWithVotes
		if err := scanPost(rows, &pv.Post, &pv.Votes); err != nil {
			return nil, translate(err, nil, nil)
		}
		out = append(out, pv)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, nil, nil)
	}
	return out, nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO posts (`+postColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		post.ID, post.OwnerID, post.Title, post.Content, post.Published, post.Rating, post.CreatedAt,
	)
	if pgCode(err) == codeForeignKeyViolation {
		return domain.ErrUserNotFound
	}
	return translate(err, nil, nil)
}

func (r *PostRepository) FindByID(ctx context.Context, id string) (*domain.Post, error) {
	var p domain.Post
	row := r.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	if err := scanPost(row, &p); err != nil {
		return nil, translate(err, domain.ErrPostNotFound, nil)
	}
	return &p, nil
}

func (r *PostRepository) FindWithVotes(ctx context.Context, id string) (*domain.PostWithVotes, error) {
	var pv domain.PostWithVotes
	row := r.db.QueryRow(ctx, `SELECT p.id, p.owner_id, p.title, p.content, p.published, p.rating, p.created_at, COUNT(v.user_id)
FROM posts p
LEFT JOIN votes v ON v.post_id = p.id
WHERE p.id = $1
GROUP BY p.id`, id)
	if err := scanPost(row, &pv.Post, &pv.Votes); err != nil {
		return nil, translate(err, domain.ErrPostNotFound, nil)
	}
	return &pv, nil
}

func (r *PostRepository) Update(ctx context.Context, id string, patch domain.PostPatch) (*domain.Post, error) {
	query, args, ok := buildUpdateQuery(id, patch)
	if !ok {
		return r.FindByID(ctx, id)
	}

	var p domain.Post
	if err := scanPost(r.db.QueryRow(ctx, query, args...), &p); err != nil {
		return nil, translate(err, domain.ErrPostNotFound, nil)
	}
	return &p, nil
}

// Delete removes the post; its votes go with it through ON DELETE CASCADE.
func (r *PostRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return translate(err, nil, nil)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func scanPost(row pgx.Row, p *domain.Post, extra ...any) error {
	dest := append([]any{&p.ID, &p.OwnerID, &p.Title, &p.Content, &p.Published, &p.Rating, &p.CreatedAt}, extra...)
	return row.Scan(dest...)
}
