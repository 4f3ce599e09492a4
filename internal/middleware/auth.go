package middleware

import (
	"context"
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"yamdb/internal/auth"
	apperrors "yamdb/internal/errors"
	"yamdb/internal/model"
)

// UserContextKey is where the authenticated *model.User is stored.
const UserContextKey = "user"

// TokenValidator parses bearer tokens.
type TokenValidator interface {
	ValidateToken(token string) (*auth.Claims, error)
}

// UserLoader resolves the user a token was issued to.
type UserLoader interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
}

// Authenticate resolves the bearer token into a user. Requests without an
// Authorization header pass through anonymously; a bad token or a token for a
// deleted user is rejected with 401.
func Authenticate(tokens TokenValidator, users UserLoader) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: UserContextKey,
		Skipper: func(c echo.Context) bool {
			return c.Request().Header.Get(echo.HeaderAuthorization) == ""
		},
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			claims, err := tokens.ValidateToken(token)
			if err != nil {
				return nil, err
			}
			user, err := users.GetByID(c.Request().Context(), claims.UserID)
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, auth.ErrInvalidToken
			}
			if err != nil {
				return nil, &lookupError{err: err}
			}
			return user, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			var le *lookupError
			if errors.As(err, &le) {
				return le.err
			}
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: "invalid or expired token",
				Code:  "NOT_AUTHENTICATED",
			})
		},
	})
}

// lookupError marks a failure to load the user that is not the caller's fault.
type lookupError struct{ err error }

func (e *lookupError) Error() string { return "load user: " + e.err.Error() }
func (e *lookupError) Unwrap() error { return e.err }

// CurrentUser returns the authenticated user or nil for anonymous requests.
func CurrentUser(c echo.Context) *model.User {
	user, _ := c.Get(UserContextKey).(*model.User)
	return user
}
