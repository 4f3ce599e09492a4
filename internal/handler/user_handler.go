package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"yamdb/internal/middleware"
	"yamdb/internal/service"
)

// UserHandler serves admin user management and /users/me/.
type UserHandler struct {
	svc      service.UserService
	pageSize int
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService, pageSize int) *UserHandler {
	return &UserHandler{svc: svc, pageSize: pageSize}
}

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param search query string false "Username substring"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Page[UserResponse]
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/ [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	opts, err := listOptions(c, h.pageSize)
	if err != nil {
		return err
	}
	res, err := h.svc.List(c.Request().Context(), middleware.CurrentUser(c), c.QueryParam("search"), opts)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, newPage(c, opts, res, toUserResponse))
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body CreateUserRequest true "User payload"
// @Success 201 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users/ [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.svc.Create(c.Request().Context(), middleware.CurrentUser(c), UserRequest(req).fields())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// GetUser godoc
// @Summary Get user by username
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} UserResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username}/ [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.svc.Get(c.Request().Context(), middleware.CurrentUser(c), c.Param("username"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateUser godoc
// @Summary Partially update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Param user body UserRequest true "Fields to change"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username}/ [patch]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	var req UserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.svc.Update(c.Request().Context(), middleware.CurrentUser(c), c.Param("username"), req.fields())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// DeleteUser godoc
// @Summary Delete a user
// @Tags users
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 204
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username}/ [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), middleware.CurrentUser(c), c.Param("username")); err != nil {
		return fail(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me godoc
// @Summary Current user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me/ [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.svc.Me(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// UpdateMe godoc
// @Summary Edit current user's profile
// @Description role is ignored unless the caller is an admin.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body UserRequest true "Fields to change"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me/ [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req UserRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.svc.UpdateMe(c.Request().Context(), middleware.CurrentUser(c), req.fields())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
