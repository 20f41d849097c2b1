package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/inkwell/posts-api/internal/core/domain"
	"github.com/inkwell/posts-api/internal/core/policy"
	"github.com/inkwell/posts-api/internal/core/ports"
)

// PostService implements post CRUD. Ownership and activity rules come from
// the policy package.
type PostService struct {
	repo        ports.PostRepository
	maxPageSize int
	logger      zerolog.Logger
	now         func() time.Time
}

func NewPostService(repo ports.PostRepository, maxPageSize int, logger zerolog.Logger) *PostService {
	return &PostService{repo: repo, maxPageSize: maxPageSize, logger: logger, now: time.Now}
}

// List validates pagination before touching the store.
func (s *PostService) List(ctx context.Context, input ports.ListPostsInput) ([]domain.PostWithVotes, error) {
	if err := s.validatePage(input.Page, input.Size); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ports.ListPostsFilter{
		Search: input.Search,
		Page:   input.Page,
		Size:   input.Size,
	})
}

// validatePage also rejects pages whose row offset does not fit in an int.
func (s *PostService) validatePage(page, size int) error {
	switch {
	case page < 1 || size < 1:
		return &domain.PaginationError{Reason: "Page and size must be positive integers"}
	case size > s.maxPageSize:
		return &domain.PaginationError{Reason: fmt.Sprintf("Size must not exceed %d", s.maxPageSize)}
	case page-1 > math.MaxInt/size:
		return &domain.PaginationError{Reason: "Page is out of range"}
	}
	return nil
}

func (s *PostService) Create(ctx context.Context, input ports.CreatePostInput, actor *domain.User) (*domain.Post, error) {
	if !policy.CanCreatePost(actor) {
		return nil, domain.ErrForbidden
	}

	post := &domain.Post{
		ID:        uuid.NewString(),
		OwnerID:   actor.ID,
		Title:     input.Title,
		Content:   input.Content,
		Published: input.Published,
		Rating:    input.Rating,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	s.logger.Info().Str("post_id", post.ID).Str("owner_id", post.OwnerID).Msg("post created")
	return post, nil
}

func (s *PostService) GetByID(ctx context.Context, id string) (*domain.PostWithVotes, error) {
	return s.repo.FindWithVotes(ctx, id)
}

// Update applies only the fields present in patch. An empty patch returns the
// post unchanged once the ownership check has passed.
func (s *PostService) Update(ctx context.Context, id string, patch domain.PostPatch, actor *domain.User) (*domain.Post, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanUpdatePost(post, actor) {
		return nil, domain.ErrForbidden
	}
	if patch.IsEmpty() {
		return post, nil
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *PostService) Delete(ctx context.Context, id string, actor *domain.User) error {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !policy.CanDeletePost(post, actor) {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("post_id", id).Msg("post deleted")
	return nil
}
