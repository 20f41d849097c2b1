package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/posts-api/internal/api/middleware"
	"github.com/inkwell/posts-api/internal/core/domain"
)

// currentUser returns the user resolved by the Bearer middleware. A missing
// user means the route was registered without it; fail closed with 401.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.UserFromContext(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return user, nil
}

// bindAndValidate binds the request into req and runs the struct validator.
// Both kinds of failure are reported as 422.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return unprocessable("invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return unprocessable(err.Error())
	}
	return nil
}
