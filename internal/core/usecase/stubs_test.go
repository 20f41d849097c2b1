package usecase

import (
	"context"
	"errors"

	"github.com/inkwell/posts-api/internal/core/domain"
	"github.com/inkwell/posts-api/internal/core/ports"
)

type stubAuthService struct {
	users map[string]*domain.User // keyed by email
	pass  map[string]string
}

func (s *stubAuthService) Authenticate(_ context.Context, email, password string) (*domain.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if s.pass[email] != password {
		return nil, domain.ErrInvalidPassword
	}
	return u, nil
}

type stubUserService struct {
	byID    map[string]*domain.User
	lookups int
}

func (s *stubUserService) Register(_ context.Context, email, _ string) (*domain.User, error) {
	u := &domain.User{ID: "u-" + email, Email: email, IsActive: true}
	s.byID[u.ID] = u
	return u, nil
}

func (s *stubUserService) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.lookups++
	u, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

type stubTokens struct{}

func (stubTokens) Issue(userID string) (string, error) { return "tok:" + userID, nil }

func (stubTokens) Verify(token string) (string, error) {
	if len(token) < 4 || token[:4] != "tok:" {
		return "", domain.ErrInvalidCredentials
	}
	return token[4:], nil
}

type stubCache struct {
	users  map[string]*domain.User
	getErr error
	sets   int
}

func newStubCache() *stubCache {
	return &stubCache{users: make(map[string]*domain.User)}
}

func (c *stubCache) Get(_ context.Context, id string) (*domain.User, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.users[id], nil
}

func (c *stubCache) Set(_ context.Context, u *domain.User) error {
	c.sets++
	c.users[u.ID] = u
	return nil
}

type stubPostService struct {
	post *domain.PostWithVotes
	err  error
}

func (s *stubPostService) List(context.Context, ports.ListPostsInput) ([]domain.PostWithVotes, error) {
	return nil, s.err
}

func (s *stubPostService) Create(_ context.Context, in ports.CreatePostInput, actor *domain.User) (*domain.Post, error) {
	return &domain.Post{ID: "p1", OwnerID: actor.ID, Title: in.Title}, s.err
}

func (s *stubPostService) GetByID(context.Context, string) (*domain.PostWithVotes, error) {
	return s.post, s.err
}

func (s *stubPostService) Update(context.Context, string, domain.PostPatch, *domain.User) (*domain.Post, error) {
	return nil, s.err
}

func (s *stubPostService) Delete(context.Context, string, *domain.User) error { return s.err }

type stubVoteService struct {
	added, removed int
}

func (s *stubVoteService) AddVote(context.Context, string, *domain.User) error {
	s.added++
	return nil
}

func (s *stubVoteService) RemoveVote(context.Context, string, *domain.User) error {
	s.removed++
	return nil
}

var errCacheDown = errors.New("cache down")
