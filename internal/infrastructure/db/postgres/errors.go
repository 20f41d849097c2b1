package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/inkwell/posts-api/internal/core/domain"
)

// SQLSTATE codes the repositories translate.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// translate maps a pgx error onto the domain. no-rows becomes notFound,
// a unique violation becomes conflict; anything else is a store failure.
func translate(err error, notFound, conflict error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) && notFound != nil {
		return notFound
	}
	if pgCode(err) == codeUniqueViolation && conflict != nil {
		return conflict
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
