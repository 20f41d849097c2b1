package service

import (
	"context"
	"sort"
	"strings"

	"github.com/inkwell/posts-api/internal/core/domain"
	"github.com/inkwell/posts-api/internal/core/ports"
)

type stubHasher struct{}

func (stubHasher) Hash(plaintext string) (string, error) { return "hashed:" + plaintext, nil }
func (stubHasher) Verify(plaintext, digest string) bool  { return digest == "hashed:"+plaintext }

type stubUserRepo struct {
	users map[string]*domain.User
	// createErr simulates the store rejecting the insert after the pre-check passed.
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type stubPostRepo struct {
	posts  map[string]*domain.Post
	order  []string
	votes  *stubVoteRepo
	calls  int
	listed []ports.ListPostsFilter
}

func newStubPostRepo(votes *stubVoteRepo) *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post), votes: votes}
}

func (r *stubPostRepo) seed(posts ...*domain.Post) {
	for _, p := range posts {
		clone := *p
		r.posts[p.ID] = &clone
		r.order = append(r.order, p.ID)
	}
}

func (r *stubPostRepo) List(_ context.Context, filter ports.ListPostsFilter) ([]domain.PostWithVotes, error) {
	r.calls++
	r.listed = append(r.listed, filter)

	var matched []domain.PostWithVotes
	for _, id := range r.order {
		p, ok := r.posts[id]
		if !ok {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Title), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, domain.PostWithVotes{Post: *p, Votes: r.votes.count(p.ID)})
	}

	start := filter.Offset()
	if start >= len(matched) {
		return []domain.PostWithVotes{}, nil
	}
	end := start + filter.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], nil
}

func (r *stubPostRepo) Create(_ context.Context, post *domain.Post) error {
	r.calls++
	r.seed(post)
	return nil
}

func (r *stubPostRepo) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.calls++
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) FindWithVotes(ctx context.Context, id string) (*domain.PostWithVotes, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.PostWithVotes{Post: *p, Votes: r.votes.count(id)}, nil
}

func (r *stubPostRepo) Update(_ context.Context, id string, patch domain.PostPatch) (*domain.Post, error) {
	r.calls++
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	patch.Apply(p)
	clone := *p
	return &clone, nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	r.calls++
	if _, ok := r.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.posts, id)
	r.votes.deletePost(id)
	return nil
}

type voteKey struct{ post, user string }

type stubVoteRepo struct {
	rows map[voteKey]struct{}
	// createErr simulates a unique-index violation from a racing insert.
	createErr error
}

func newStubVoteRepo() *stubVoteRepo {
	return &stubVoteRepo{rows: make(map[voteKey]struct{})}
}

func (r *stubVoteRepo) count(postID string) int64 {
	var n int64
	for k := range r.rows {
		if k.post == postID {
			n++
		}
	}
	return n
}

func (r *stubVoteRepo) deletePost(postID string) {
	for k := range r.rows {
		if k.post == postID {
			delete(r.rows, k)
		}
	}
}

func (r *stubVoteRepo) voters(postID string) []string {
	var out []string
	for k := range r.rows {
		if k.post == postID {
			out = append(out, k.user)
		}
	}
	sort.Strings(out)
	return out
}

func (r *stubVoteRepo) Exists(_ context.Context, postID, userID string) (bool, error) {
	_, ok := r.rows[voteKey{postID, userID}]
	return ok, nil
}

func (r *stubVoteRepo) Create(_ context.Context, vote domain.Vote) error {
	if r.createErr != nil {
		return r.createErr
	}
	k := voteKey{vote.PostID, vote.UserID}
	if _, ok := r.rows[k]; ok {
		return domain.ErrAlreadyVoted
	}
	r.rows[k] = struct{}{}
	return nil
}

func (r *stubVoteRepo) Delete(_ context.Context, postID, userID string) error {
	k := voteKey{postID, userID}
	if _, ok := r.rows[k]; !ok {
		return domain.ErrVoteNotFound
	}
	delete(r.rows, k)
	return nil
}
