package handler

import (
	"time"

	"github.com/inkwell/posts-api/internal/core/domain"
)

// dataResponse is the success envelope: {"data": ...}.
type dataResponse struct {
	Data any `json:"data"`
}

// errorResponse documents the {"detail"} body rendered by the api package's
// error handler; swag annotations cannot reference that unexported type.
type errorResponse struct {
	Detail string `json:"detail"`
}

// --- Auth ---

// loginRequest mirrors the OAuth2 password form; username carries the email.
type loginRequest struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// --- Users ---

type createUserRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// --- Posts ---

type listPostsQuery struct {
	Page   int
	Size   int
	Search string
}

type createPostRequest struct {
	Title     string `json:"title"   validate:"required"`
	Content   string `json:"content" validate:"required"`
	Published *bool  `json:"published"`
	Rating    *int   `json:"rating"`
}

// updatePostRequest distinguishes an absent key from an explicit null so
// that only supplied fields are written.
type updatePostRequest struct {
	Title     domain.Optional[*string] `json:"title"     swaggertype:"string"`
	Content   domain.Optional[*string] `json:"content"   swaggertype:"string"`
	Published domain.Optional[*bool]   `json:"published" swaggertype:"boolean"`
	Rating    domain.Optional[*int]    `json:"rating"    swaggertype:"integer"`
}

type postResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Published bool      `json:"published"`
	Rating    *int      `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

type postWithVotesResponse struct {
	postResponse
	Votes int64 `json:"votes"`
}

// --- Votes ---

type voteRequest struct {
	PostID        string `json:"post_id"        validate:"required,uuid"`
	VoteDirection *int   `json:"vote_direction" validate:"required,oneof=0 1"`
}
