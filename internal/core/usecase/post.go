package usecase

import (
	"context"

	"github.com/inkwell/posts-api/internal/core/domain"
	"github.com/inkwell/posts-api/internal/core/policy"
	"github.com/inkwell/posts-api/internal/core/ports"
)

// Posts implements ports.PostUseCase.
type Posts struct {
	posts ports.PostService
}

func NewPosts(posts ports.PostService) *Posts {
	return &Posts{posts: posts}
}

func (p *Posts) List(ctx context.Context, input ports.ListPostsInput) ([]domain.PostWithVotes, error) {
	return p.posts.List(ctx, input)
}

func (p *Posts) Create(ctx context.Context, input ports.CreatePostInput, actor *domain.User) (*domain.Post, error) {
	return p.posts.Create(ctx, input, actor)
}

// Get is public; CanViewPost is consulted so a future visibility rule only
// needs to change the policy.
func (p *Posts) Get(ctx context.Context, id string) (*domain.PostWithVotes, error) {
	post, err := p.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !policy.CanViewPost(&post.Post, nil) {
		return nil, domain.ErrForbidden
	}
	return post, nil
}

func (p *Posts) Update(ctx context.Context, id string, patch domain.PostPatch, actor *domain.User) (*domain.Post, error) {
	return p.posts.Update(ctx, id, patch, actor)
}

func (p *Posts) Delete(ctx context.Context, id string, actor *domain.User) error {
	return p.posts.Delete(ctx, id, actor)
}
