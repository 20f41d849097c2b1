package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/posts-api/internal/api/metrics"
	"github.com/inkwell/posts-api/internal/core/domain"
	"github.com/inkwell/posts-api/internal/core/ports"
)

type VoteHandler struct {
	votes ports.VoteUseCase
}

func NewVoteHandler(votes ports.VoteUseCase) *VoteHandler {
	return &VoteHandler{votes: votes}
}

// Vote adds (vote_direction=1) or removes (vote_direction=0) the caller's vote.
//
// @Summary      Vote on a post
// @Tags         votes
// @Accept       json
// @Security     BearerAuth
// @Param        body  body  voteRequest  true  "Vote"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /votes [post]
func (h *VoteHandler) Vote(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req voteRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	direction := *req.VoteDirection
	if err := h.votes.Vote(c.Request().Context(), req.PostID, direction, actor); err != nil {
		return err
	}

	action := metrics.VoteAdded
	if direction == domain.VoteRemove {
		action = metrics.VoteRemoved
	}
	metrics.VotesTotal.WithLabelValues(action).Inc()
	return c.NoContent(http.StatusNoContent)
}
