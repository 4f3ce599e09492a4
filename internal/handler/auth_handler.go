package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"yamdb/internal/service"
)

// AuthHandler handles signup and token exchange.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest represents a signup request.
type SignupRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"required,email,max=254"`
}

// SignupResponse echoes the accepted pair.
type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest exchanges a confirmation code for a token.
type TokenRequest struct {
	Username         string `json:"username" validate:"required"`
	ConfirmationCode string `json:"confirmation_code" validate:"required"`
}

// TokenResponse carries the access token.
type TokenResponse struct {
	Token string `json:"token"`
}

// Signup godoc
// @Summary Register or re-request a confirmation code
// @Description Creates the user on first call and emails a confirmation code. Repeating the call with the same pair issues a new code.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 200 {object} SignupResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signup/ [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Signup(c.Request().Context(), req.Username, req.Email)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, SignupResponse{Username: user.Username, Email: user.Email})
}

// Token godoc
// @Summary Obtain an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "Username and confirmation code"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/token/ [post]
func (h *AuthHandler) Token(c echo.Context) error {
	var req TokenRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	token, err := h.authService.ObtainToken(c.Request().Context(), req.Username, req.ConfirmationCode)
	if err != nil {
		return fail(err)
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}
