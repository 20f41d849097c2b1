package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/inkwell/posts-api/internal/core/domain"
)

const userKey = "user"

// SetUser stores the authenticated user on the request context.
func SetUser(c echo.Context, user *domain.User) {
	c.Set(userKey, user)
}

// UserFromContext returns the user stored by Bearer.
func UserFromContext(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(userKey).(*domain.User)
	return user, ok && user != nil
}
