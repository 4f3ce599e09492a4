package router

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	apperrors "yamdb/internal/errors"
	"yamdb/internal/handler"
	"yamdb/internal/middleware"
	"yamdb/internal/permission"
)

// Handlers groups every HTTP handler the API serves.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Category *handler.CategoryHandler
	Genre    *handler.GenreHandler
	Title    *handler.TitleHandler
	Review   *handler.ReviewHandler
	Comment  *handler.CommentHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	log *zap.Logger,
	tokens middleware.TokenValidator,
	users middleware.UserLoader,
	h Handlers,
) {
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.RequestID())
	e.Use(middleware.Metrics())
	e.Use(middleware.RequestLogger(log))
	e.Use(echomw.Recover())

	e.Validator = NewValidator()
	e.HTTPErrorHandler = ErrorHandler(log)

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// No group-level middleware: echo would add catch-all routes under the
	// prefix and answer 404 where 405 is due.
	api := e.Group("/api/v1")
	authn := middleware.Authenticate(tokens, users)
	with := func(m ...echo.MiddlewareFunc) []echo.MiddlewareFunc {
		return append([]echo.MiddlewareFunc{authn}, m...)
	}

	readCatalog := middleware.Require(permission.Catalog, permission.Read)
	writeCatalog := middleware.Require(permission.Catalog, permission.Create)
	manageUsers := middleware.Require(permission.Users, permission.Read)
	self := middleware.Require(permission.Self, permission.Read)
	postFeedback := middleware.Require(permission.Feedback, permission.Create)

	// Public routes
	api.POST("/auth/signup", h.Auth.Signup, with()...)
	api.POST("/auth/token", h.Auth.Token, with()...)

	// Users; /me is registered before /:username so it wins the match.
	api.GET("/users/me", h.User.Me, with(self)...)
	api.PATCH("/users/me", h.User.UpdateMe, with(self)...)
	api.DELETE("/users/me", middleware.MethodNotAllowed, with()...)
	api.GET("/users", h.User.ListUsers, with(manageUsers)...)
	api.POST("/users", h.User.CreateUser, with(manageUsers)...)
	api.GET("/users/:username", h.User.GetUser, with(manageUsers)...)
	api.PATCH("/users/:username", h.User.UpdateUser, with(manageUsers)...)
	api.DELETE("/users/:username", h.User.DeleteUser, with(manageUsers)...)

	// Catalog
	api.GET("/categories", h.Category.List, with(readCatalog)...)
	api.POST("/categories", h.Category.Create, with(writeCatalog)...)
	api.DELETE("/categories/:slug", h.Category.Delete, with(writeCatalog)...)

	api.GET("/genres", h.Genre.List, with(readCatalog)...)
	api.POST("/genres", h.Genre.Create, with(writeCatalog)...)
	api.DELETE("/genres/:slug", h.Genre.Delete, with(writeCatalog)...)

	api.GET("/titles", h.Title.List, with(readCatalog)...)
	api.POST("/titles", h.Title.Create, with(writeCatalog)...)
	api.GET("/titles/:title_id", h.Title.Get, with(readCatalog)...)
	api.PATCH("/titles/:title_id", h.Title.Update, with(writeCatalog)...)
	api.DELETE("/titles/:title_id", h.Title.Delete, with(writeCatalog)...)

	// Feedback; ownership is checked per record in the services.
	reviews := api.Group("/titles/:title_id/reviews")
	reviews.GET("", h.Review.List, with()...)
	reviews.POST("", h.Review.Create, with(postFeedback)...)
	reviews.GET("/:review_id", h.Review.Get, with()...)
	reviews.PATCH("/:review_id", h.Review.Update, with()...)
	reviews.DELETE("/:review_id", h.Review.Delete, with()...)

	comments := reviews.Group("/:review_id/comments")
	comments.GET("", h.Comment.List, with()...)
	comments.POST("", h.Comment.Create, with(postFeedback)...)
	comments.GET("/:comment_id", h.Comment.Get, with()...)
	comments.PATCH("/:comment_id", h.Comment.Update, with()...)
	comments.DELETE("/:comment_id", h.Comment.Delete, with()...)
}

// ErrorHandler renders every error as ErrorResponse JSON. Errors that are not
// echo HTTP errors go through the domain mapping; 5xx causes are logged.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		var body interface{}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			switch msg := he.Message.(type) {
			case apperrors.ErrorResponse:
				body = msg
			case string:
				body = apperrors.ErrorResponse{Error: strings.ToLower(msg), Code: codeForStatus(status)}
			default:
				body = apperrors.ErrorResponse{Error: strings.ToLower(http.StatusText(status)), Code: codeForStatus(status)}
			}
			if he.Internal != nil && status >= http.StatusInternalServerError {
				log.Error("request failed", zap.Error(he.Internal), zap.String("path", c.Path()))
			}
		} else {
			httpErr := apperrors.MapErrorToHTTP(err)
			status = httpErr.StatusCode
			body = httpErr.ToErrorResponse()
			if status >= http.StatusInternalServerError {
				log.Error("request failed", zap.Error(err), zap.String("path", c.Path()))
			}
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			log.Debug("write error response", zap.Error(writeErr))
		}
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusUnauthorized:
		return "NOT_AUTHENTICATED"
	case http.StatusForbidden:
		return "PERMISSION_DENIED"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	default:
		if status >= http.StatusInternalServerError {
			return "INTERNAL_ERROR"
		}
		return "ERROR"
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns a validator that reports errors under JSON field names.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	ve := &apperrors.ValidationError{}
	for _, fe := range fieldErrs {
		ve.Add(fe.Field(), message(fe))
	}
	return ve
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "enter a valid email address"
	case "max":
		return "ensure this field has no more than " + fe.Param() + " characters"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "invalid value"
	}
}
