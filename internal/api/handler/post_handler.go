package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/posts-api/internal/api/metrics"
	"github.com/inkwell/posts-api/internal/core/ports"
)

type PostHandler struct {
	posts           ports.PostUseCase
	defaultPageSize int
}

// NewPostHandler applies defaultPageSize when the size query parameter is absent.
func NewPostHandler(posts ports.PostUseCase, defaultPageSize int) *PostHandler {
	return &PostHandler{posts: posts, defaultPageSize: defaultPageSize}
}

// List returns one page of posts with vote counts.
//
// @Summary      List posts
// @Tags         posts
// @Produce      json
// @Param        page    query     int     false  "1-based page"  default(1)
// @Param        size    query     int     false  "Page size"
// @Param        search  query     string  false  "Case-insensitive title filter"
// @Success      200     {object}  dataResponse{data=[]postWithVotesResponse}
// @Failure      400     {object}  errorResponse
// @Failure      422     {object}  errorResponse
// @Router       /posts [get]
func (h *PostHandler) List(c echo.Context) error {
	q := listPostsQuery{Page: 1, Size: h.defaultPageSize}
	if err := echo.QueryParamsBinder(c).
		Int("page", &q.Page).
		Int("size", &q.Size).
		String("search", &q.Search).
		BindError(); err != nil {
		return unprocessable("page and size must be integers")
	}

	items, err := h.posts.List(c.Request().Context(), ports.ListPostsInput{
		Page:   q.Page,
		Size:   q.Size,
		Search: q.Search,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: toPostList(items)})
}

// Create publishes a post owned by the caller.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPostRequest  true  "Post"
// @Success      201   {object}  dataResponse{data=postResponse}
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createPostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.posts.Create(c.Request().Context(), toCreatePostInput(req), actor)
	if err != nil {
		return err
	}

	metrics.PostsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, dataResponse{Data: toPostResponse(post)})
}

// Get returns a post with its vote count.
//
// @Summary      Get a post
// @Tags         posts
// @Produce      json
// @Param        id   path      string  true  "Post id"
// @Success      200  {object}  dataResponse{data=postWithVotesResponse}
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	post, err := h.posts.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: toPostWithVotesResponse(post)})
}

// Update changes only the supplied fields. Owner only.
//
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Post id"
// @Param        body  body      updatePostRequest  true  "Fields to change"
// @Success      202   {object}  dataResponse{data=postResponse}
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /posts/{id} [patch]
func (h *PostHandler) Update(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	var req updatePostRequest
	if err := c.Bind(&req); err != nil {
		return unprocessable("invalid request body")
	}
	patch, err := toPostPatch(req)
	if err != nil {
		return err
	}

	post, err := h.posts.Update(c.Request().Context(), c.Param("id"), patch, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, dataResponse{Data: toPostResponse(post)})
}

// Delete removes a post and its votes. Owner only.
//
// @Summary      Delete a post
// @Tags         posts
// @Security     BearerAuth
// @Param        id   path  string  true  "Post id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}

	if err := h.posts.Delete(c.Request().Context(), c.Param("id"), actor); err != nil {
		return err
	}

	metrics.PostsDeletedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
