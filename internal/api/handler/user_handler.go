package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/posts-api/internal/api/metrics"
	"github.com/inkwell/posts-api/internal/core/ports"
)

type UserHandler struct {
	users ports.UserUseCase
}

func NewUserHandler(users ports.UserUseCase) *UserHandler {
	return &UserHandler{users: users}
}

// Create registers a new account.
//
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "Credentials"
// @Success      201   {object}  dataResponse{data=userResponse}
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	metrics.UsersRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, dataResponse{Data: toUserResponse(user)})
}

// Get returns a user by id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  dataResponse{data=userResponse}
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.users.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataResponse{Data: toUserResponse(user)})
}
