package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/posts-api/internal/core/ports"
)

// Bearer resolves the Authorization header into the current user and stores
// it on the context. Any failure is a 401 with a Bearer challenge.
func Bearer(auth ports.AuthUseCase) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return unauthorized(c, "Not authenticated")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return unauthorized(c, "Not authenticated")
			}

			user, err := auth.ResolveUser(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				// The error handler turns ErrInvalidCredentials into 401 and
				// store failures into 503.
				return err
			}

			SetUser(c, user)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, msg string) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return echo.NewHTTPError(http.StatusUnauthorized, msg)
}
