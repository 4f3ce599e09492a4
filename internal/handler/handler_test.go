package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "yamdb/internal/errors"
	"yamdb/internal/middleware"
	"yamdb/internal/model"
	"yamdb/internal/repository"
	"yamdb/internal/service"
)

type testValidator struct {
	v *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	if err := tv.v.Struct(i); err != nil {
		return apperrors.NewValidationError("body", err.Error())
	}
	return nil
}

var (
	alice = &model.User{ID: 1, Username: "alice", Email: "alice@example.com", Role: model.RoleUser}
	admin = &model.User{ID: 9, Username: "root", Email: "root@example.com", Role: model.RoleAdmin}
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{v: validator.New()}
	return e
}

// as puts user into the request context the way Authenticate does.
func as(user *model.User) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if user != nil {
				c.Set(middleware.UserContextKey, user)
			}
			return next(c)
		}
	}
}

func request(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Code
}

func TestAuthHandler_Signup(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("Signup", mock.Anything, "alice", "alice@example.com").Return(alice, nil)
	svc.On("Signup", mock.Anything, "alice", "other@example.com").
		Return(nil, apperrors.NewValidationError("username", "taken"))

	e := newEcho()
	h := NewAuthHandler(svc)
	e.POST("/auth/signup", h.Signup)

	rec := request(e, http.MethodPost, "/auth/signup", `{"username":"alice","email":"alice@example.com"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"username":"alice","email":"alice@example.com"}`, rec.Body.String())

	rec = request(e, http.MethodPost, "/auth/signup", `{"username":"alice","email":"other@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))

	rec = request(e, http.MethodPost, "/auth/signup", `{"username":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = request(e, http.MethodPost, "/auth/signup", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, rec))

	svc.AssertNumberOfCalls(t, "Signup", 2)
}

func TestAuthHandler_Token(t *testing.T) {
	svc := new(MockAuthService)
	svc.On("ObtainToken", mock.Anything, "alice", "GOODCODE").Return("jwt-token", nil)
	svc.On("ObtainToken", mock.Anything, "ghost", "GOODCODE").
		Return("", apperrors.ErrNotFound)

	e := newEcho()
	e.POST("/auth/token", NewAuthHandler(svc).Token)

	rec := request(e, http.MethodPost, "/auth/token", `{"username":"alice","confirmation_code":"GOODCODE"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"token":"jwt-token"}`, rec.Body.String())

	rec = request(e, http.MethodPost, "/auth/token", `{"username":"ghost","confirmation_code":"GOODCODE"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = request(e, http.MethodPost, "/auth/token", `{"username":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUserHandler_Me(t *testing.T) {
	svc := new(MockUserService)
	svc.On("Me", mock.Anything, alice).Return(alice, nil)
	svc.On("UpdateMe", mock.Anything, alice, service.UserFields{Bio: ptr("hello")}).
		Return(&model.User{ID: 1, Username: "alice", Email: "alice@example.com", Bio: "hello", Role: model.RoleUser}, nil)

	e := newEcho()
	h := NewUserHandler(svc, 10)
	e.GET("/users/me", h.Me, as(alice))
	e.PATCH("/users/me", h.UpdateMe, as(alice))

	rec := request(e, http.MethodGet, "/users/me", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, model.RoleUser, got.Role)

	rec = request(e, http.MethodPatch, "/users/me", `{"bio":"hello"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bio":"hello"`)
}

func TestUserHandler_CreateAndDelete(t *testing.T) {
	svc := new(MockUserService)
	created := &model.User{ID: 5, Username: "bob", Email: "bob@example.com", Role: model.RoleModerator}
	svc.On("Create", mock.Anything, admin, mock.MatchedBy(func(f service.UserFields) bool {
		return *f.Username == "bob" && *f.Role == model.RoleModerator
	})).Return(created, nil)
	svc.On("Delete", mock.Anything, admin, "bob").Return(nil)
	svc.On("Delete", mock.Anything, admin, "ghost").Return(apperrors.ErrNotFound)

	e := newEcho()
	h := NewUserHandler(svc, 10)
	e.POST("/users", h.CreateUser, as(admin))
	e.DELETE("/users/:username", h.DeleteUser, as(admin))

	rec := request(e, http.MethodPost, "/users", `{"username":"bob","email":"bob@example.com","role":"moderator"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = request(e, http.MethodPost, "/users", `{"username":"bob","email":"bob@example.com","role":"god"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = request(e, http.MethodPost, "/users", `{"email":"bob@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, http.StatusNoContent, request(e, http.MethodDelete, "/users/bob", "").Code)
	assert.Equal(t, http.StatusNotFound, request(e, http.MethodDelete, "/users/ghost", "").Code)
	svc.AssertNumberOfCalls(t, "Create", 1)
}

func TestCategoryHandler_ListPagination(t *testing.T) {
	svc := new(MockCategoryService)
	svc.On("List", mock.Anything, "", service.ListOptions{Page: 2, PageSize: 2}).
		Return(&service.ListResult[model.Category]{
			Items: []model.Category{{Name: "Films", Slug: "films"}, {Name: "Music", Slug: "music"}},
			Total: 5,
		}, nil)

	e := newEcho()
	e.GET("/api/v1/categories", NewCategoryHandler(svc, 2).List)

	rec := request(e, http.MethodGet, "/api/v1/categories?page=2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page Page[SluggedResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, int64(5), page.Count)
	require.Len(t, page.Results, 2)
	assert.Equal(t, "films", page.Results[0].Slug)
	require.NotNil(t, page.Next)
	assert.Equal(t, "http://example.com/api/v1/categories?page=3", *page.Next)
	require.NotNil(t, page.Previous)
	assert.Equal(t, "http://example.com/api/v1/categories", *page.Previous)

	rec = request(e, http.MethodGet, "/api/v1/categories?page=zero", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoryHandler_Create(t *testing.T) {
	svc := new(MockCategoryService)
	svc.On("Create", mock.Anything, admin, "Films", "films").Return(&model.Category{ID: 1, Name: "Films", Slug: "films"}, nil)

	e := newEcho()
	e.POST("/categories", NewCategoryHandler(svc, 10).Create, as(admin))

	rec := request(e, http.MethodPost, "/categories", `{"name":"Films","slug":"films"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"name":"Films","slug":"films"}`, rec.Body.String())

	rec = request(e, http.MethodPost, "/categories", `{"name":"Films","slug":"`+strings.Repeat("s", 51)+`"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTitleHandler_Get(t *testing.T) {
	cat := &model.Category{Name: "Books", Slug: "books"}
	rated := &model.Title{
		ID: 3, Name: "Solaris", Year: 1961, Category: cat,
		Genres: []model.Genre{{Name: "Sci-fi", Slug: "sci-fi"}},
		Rating: decimal.NewNullDecimal(decimal.RequireFromString("8.6666")),
	}
	unrated := &model.Title{ID: 4, Name: "Draft", Year: 2020}

	svc := new(MockTitleService)
	svc.On("Get", mock.Anything, uint(3)).Return(rated, nil)
	svc.On("Get", mock.Anything, uint(4)).Return(unrated, nil)
	svc.On("Get", mock.Anything, uint(5)).Return(nil, apperrors.ErrNotFound)

	e := newEcho()
	e.GET("/titles/:title_id", NewTitleHandler(svc, 10).Get)

	rec := request(e, http.MethodGet, "/titles/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"id": 3, "name": "Solaris", "year": 1961, "rating": 8.67, "description": "",
		"genre": [{"name": "Sci-fi", "slug": "sci-fi"}],
		"category": {"name": "Books", "slug": "books"}
	}`, rec.Body.String())

	rec = request(e, http.MethodGet, "/titles/4", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id": 4, "name": "Draft", "year": 2020, "rating": null, "description": "", "genre": [], "category": null}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, request(e, http.MethodGet, "/titles/5", "").Code)
	assert.Equal(t, http.StatusNotFound, request(e, http.MethodGet, "/titles/abc", "").Code)
	svc.AssertNotCalled(t, "Get", mock.Anything, uint(0))
}

func TestTitleHandler_ListFilters(t *testing.T) {
	svc := new(MockTitleService)
	want := repository.TitleFilter{Category: "books", Genre: "drama", Name: "sol", Year: 1961}
	svc.On("List", mock.Anything, want, service.ListOptions{Page: 1, PageSize: 10}).
		Return(&service.ListResult[model.Title]{}, nil)

	e := newEcho()
	e.GET("/titles", NewTitleHandler(svc, 10).List)

	rec := request(e, http.MethodGet, "/titles?category=books&genre=drama&name=sol&year=1961", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":0,"next":null,"previous":null,"results":[]}`, rec.Body.String())

	rec = request(e, http.MethodGet, "/titles?year=old", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNumberOfCalls(t, "List", 1)
}

func TestTitleHandler_CreatePassesSlugs(t *testing.T) {
	svc := new(MockTitleService)
	svc.On("Create", mock.Anything, admin, service.TitleFields{
		Name:     ptr("Solaris"),
		Year:     ptr(1961),
		Genre:    []string{"sci-fi", "drama"},
		Category: ptr("books"),
	}).Return(&model.Title{ID: 7, Name: "Solaris", Year: 1961}, nil)

	e := newEcho()
	e.POST("/titles", NewTitleHandler(svc, 10).Create, as(admin))

	rec := request(e, http.MethodPost, "/titles", `{"name":"Solaris","year":1961,"genre":["sci-fi","drama"],"category":"books"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":7`)
}

func TestReviewHandler_Create(t *testing.T) {
	pub := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := new(MockReviewService)
	svc.On("Create", mock.Anything, alice, uint(3), "Great", 9).
		Return(&model.Review{ID: 11, TitleID: 3, Text: "Great", Score: 9, PubDate: pub, Author: *alice}, nil)
	svc.On("Create", mock.Anything, alice, uint(3), "Again", 5).
		Return(nil, apperrors.NewValidationError("non_field_errors", "already reviewed"))
	svc.On("Create", mock.Anything, (*model.User)(nil), uint(3), "Anon", 5).
		Return(nil, apperrors.ErrNotAuthenticated)

	e := newEcho()
	h := NewReviewHandler(svc, 10)
	e.POST("/titles/:title_id/reviews", h.Create, as(alice))
	e.POST("/anon/titles/:title_id/reviews", h.Create)

	rec := request(e, http.MethodPost, "/titles/3/reviews", `{"text":"Great","score":9}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":11,"text":"Great","author":"alice","score":9,"pub_date":"2026-01-02T03:04:05Z"}`, rec.Body.String())

	rec = request(e, http.MethodPost, "/titles/3/reviews", `{"text":"Again","score":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = request(e, http.MethodPost, "/titles/3/reviews", `{"text":"No score"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = request(e, http.MethodPost, "/anon/titles/3/reviews", `{"text":"Anon","score":5}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReviewHandler_UpdateAndDelete(t *testing.T) {
	svc := new(MockReviewService)
	svc.On("Update", mock.Anything, alice, uint(3), uint(11), (*string)(nil), ptr(7)).
		Return(&model.Review{ID: 11, Text: "Great", Score: 7, Author: *alice}, nil)
	svc.On("Delete", mock.Anything, alice, uint(3), uint(12)).Return(apperrors.ErrPermissionDenied)

	e := newEcho()
	h := NewReviewHandler(svc, 10)
	e.PATCH("/titles/:title_id/reviews/:review_id", h.Update, as(alice))
	e.DELETE("/titles/:title_id/reviews/:review_id", h.Delete, as(alice))

	rec := request(e, http.MethodPatch, "/titles/3/reviews/11", `{"score":7}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"score":7`)

	rec = request(e, http.MethodDelete, "/titles/3/reviews/12", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "PERMISSION_DENIED", errorCode(t, rec))
}

func TestCommentHandler(t *testing.T) {
	svc := new(MockCommentService)
	svc.On("List", mock.Anything, uint(3), uint(11), service.ListOptions{Page: 1, PageSize: 10}).
		Return(&service.ListResult[model.Comment]{
			Items: []model.Comment{{ID: 1, Text: "agreed", Author: *alice}},
			Total: 1,
		}, nil)
	svc.On("Create", mock.Anything, alice, uint(3), uint(11), "me too").
		Return(&model.Comment{ID: 2, Text: "me too", Author: *alice}, nil)
	svc.On("Get", mock.Anything, uint(3), uint(99), uint(1)).Return(nil, apperrors.ErrNotFound)
	svc.On("Delete", mock.Anything, alice, uint(3), uint(11), uint(1)).Return(errors.New("db down"))

	e := newEcho()
	h := NewCommentHandler(svc, 10)
	e.GET("/titles/:title_id/reviews/:review_id/comments", h.List)
	e.POST("/titles/:title_id/reviews/:review_id/comments", h.Create, as(alice))
	e.GET("/titles/:title_id/reviews/:review_id/comments/:comment_id", h.Get)
	e.DELETE("/titles/:title_id/reviews/:review_id/comments/:comment_id", h.Delete, as(alice))

	rec := request(e, http.MethodGet, "/titles/3/reviews/11/comments", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var page Page[CommentResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Results, 1)
	assert.Equal(t, "alice", page.Results[0].Author)
	assert.Nil(t, page.Next)

	rec = request(e, http.MethodPost, "/titles/3/reviews/11/comments", `{"text":"me too"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	assert.Equal(t, http.StatusNotFound, request(e, http.MethodGet, "/titles/3/reviews/99/comments/1", "").Code)
	assert.Equal(t, http.StatusNotFound, request(e, http.MethodGet, "/titles/3/reviews/x/comments/1", "").Code)

	rec = request(e, http.MethodDelete, "/titles/3/reviews/11/comments/1", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", errorCode(t, rec))
	assert.NotContains(t, rec.Body.String(), "db down")
}

func ptr[T any](v T) *T { return &v }

func TestBadRequest_HidesBinderError(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"binder error with cause", echo.NewHTTPError(http.StatusBadRequest, "Syntax error").SetInternal(errors.New("unexpected EOF"))},
		{"binder error without cause", echo.ErrUnsupportedMediaType},
		{"plain error", errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var he *echo.HTTPError
			require.ErrorAs(t, badRequest(tt.err), &he)
			assert.Equal(t, http.StatusBadRequest, he.Code)
			assert.Equal(t, "INVALID_REQUEST", he.Message.(apperrors.ErrorResponse).Code)

			var inner *echo.HTTPError
			assert.False(t, errors.As(he.Internal, &inner))
		})
	}
}

func TestBind_MalformedBodyKeepsErrorCode(t *testing.T) {
	e := newEcho()
	e.POST("/auth/token", NewAuthHandler(new(MockAuthService)).Token)

	for _, body := range []string{`{"username":`, `[1,2]`, `{"username": 5}`} {
		rec := request(e, http.MethodPost, "/auth/token", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "INVALID_REQUEST", errorCode(t, rec), body)
	}
}
