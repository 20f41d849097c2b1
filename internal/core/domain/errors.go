package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidCredentials = errors.New("could not validate credentials")

	ErrPostNotFound      = errors.New("post not found")
	ErrInvalidPagination = errors.New("invalid pagination")

	ErrVoteNotFound = errors.New("vote not found")
	ErrAlreadyVoted = errors.New("already voted")

	ErrForbidden = errors.New("access forbidden")

	// ErrStoreUnavailable wraps any persistence failure that has no domain meaning.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// PaginationError carries the client-facing reason a page request was
// rejected. It matches ErrInvalidPagination under errors.Is.
type PaginationError struct {
	Reason string
}

func (e *PaginationError) Error() string { return "invalid pagination: " + e.Reason }

func (e *PaginationError) Unwrap() error { return ErrInvalidPagination }
