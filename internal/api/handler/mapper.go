package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/posts-api/internal/core/domain"
	"github.com/inkwell/posts-api/internal/core/ports"
)

// --- Request → use case input ---

func toCreatePostInput(req createPostRequest) ports.CreatePostInput {
	published := true
	if req.Published != nil {
		published = *req.Published
	}
	return ports.CreatePostInput{
		Title:     req.Title,
		Content:   req.Content,
		Published: published,
		Rating:    req.Rating,
	}
}

// toPostPatch rejects explicit nulls and empty strings for the required
// columns. A null rating clears it.
func toPostPatch(req updatePostRequest) (domain.PostPatch, error) {
	var patch domain.PostPatch

	if req.Title.Set {
		if req.Title.Value == nil || *req.Title.Value == "" {
			return patch, unprocessable("title must be a non-empty string")
		}
		patch.Title = domain.Some(*req.Title.Value)
	}
	if req.Content.Set {
		if req.Content.Value == nil || *req.Content.Value == "" {
			return patch, unprocessable("content must be a non-empty string")
		}
		patch.Content = domain.Some(*req.Content.Value)
	}
	if req.Published.Set {
		if req.Published.Value == nil {
			return patch, unprocessable("published must be a boolean")
		}
		patch.Published = domain.Some(*req.Published.Value)
	}
	if req.Rating.Set {
		patch.Rating = domain.Some(req.Rating.Value)
	}
	return patch, nil
}

func unprocessable(msg string) error {
	return echo.NewHTTPError(http.StatusUnprocessableEntity, msg)
}

// --- Domain → response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

func toPostResponse(p *domain.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Title:     p.Title,
		Content:   p.Content,
		Published: p.Published,
		Rating:    p.Rating,
		CreatedAt: p.CreatedAt,
	}
}

func toPostWithVotesResponse(pv *domain.PostWithVotes) postWithVotesResponse {
	return postWithVotesResponse{
		postResponse: toPostResponse(&pv.Post),
		Votes:        pv.Votes,
	}
}

func toPostList(items []domain.PostWithVotes) []postWithVotesResponse {
	out := make([]postWithVotesResponse, 0, len(items))
	for i := range items {
		out = append(out, toPostWithVotesResponse(&items[i]))
	}
	return out
}
