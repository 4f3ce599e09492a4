package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "yamdb/internal/errors"
	"yamdb/internal/permission"
)

// Require rejects the request unless the current user may perform action on
// resource. Ownership checks stay in the services; this only covers rules that
// do not depend on a record, so that 401 and 403 come before body validation.
func Require(resource permission.Resource, action permission.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := permission.Check(CurrentUser(c), resource, action, permission.NoOwner); err != nil {
				httpErr := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// MethodNotAllowed answers 405 for a route that exists but does not accept the method.
func MethodNotAllowed(c echo.Context) error {
	return echo.NewHTTPError(http.StatusMethodNotAllowed, apperrors.ErrorResponse{
		Error: "method not allowed",
		Code:  "METHOD_NOT_ALLOWED",
	})
}
