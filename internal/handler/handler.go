package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "yamdb/internal/errors"
	"yamdb/internal/service"
)

// fail converts a domain error into an echo HTTP error carrying ErrorResponse.
func fail(err error) error {
	httpErr := apperrors.MapErrorToHTTP(err)
	he := echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	if httpErr.StatusCode >= http.StatusInternalServerError {
		he = he.SetInternal(err)
	}
	return he
}

// badRequest reports an undecodable body. The binder's own HTTPError is
// unwrapped so error handlers never render it in place of ErrorResponse.
func badRequest(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Internal != nil {
			err = he.Internal
		} else {
			err = fmt.Errorf("%v", he.Message)
		}
	}
	return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
		Error: "invalid request body",
		Code:  "INVALID_REQUEST",
	}).SetInternal(err)
}

// bind decodes and validates the request body into req.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest(err)
	}
	if err := c.Validate(req); err != nil {
		return fail(err)
	}
	return nil
}

// idParam parses a numeric path parameter; malformed ids are reported as 404.
func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fail(fmt.Errorf("%s %q: %w", name, c.Param(name), apperrors.ErrNotFound))
	}
	return uint(id), nil
}

// Page is the paginated list envelope.
type Page[T any] struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// listOptions reads page and page_size. A malformed page is a 404.
func listOptions(c echo.Context, defaultSize int) (service.ListOptions, error) {
	opts := service.ListOptions{Page: 1, PageSize: defaultSize}
	if raw := c.QueryParam("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return opts, fail(fmt.Errorf("invalid page: %w", apperrors.ErrNotFound))
		}
		opts.Page = page
	}
	if raw := c.QueryParam("page_size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			opts.PageSize = min(size, service.MaxPageSize)
		}
	}
	return opts, nil
}

// newPage renders a service result with absolute next/previous links.
func newPage[M any, T any](c echo.Context, opts service.ListOptions, res *service.ListResult[M], render func(*M) T) Page[T] {
	out := Page[T]{Count: res.Total, Results: make([]T, 0, len(res.Items))}
	for i := range res.Items {
		out.Results = append(out.Results, render(&res.Items[i]))
	}
	if int64(opts.Page*opts.PageSize) < res.Total {
		next := pageURL(c, opts.Page+1)
		out.Next = &next
	}
	if opts.Page > 1 {
		prev := pageURL(c, opts.Page-1)
		out.Previous = &prev
	}
	return out
}

func pageURL(c echo.Context, page int) string {
	u := url.URL{
		Scheme: c.Scheme(),
		Host:   c.Request().Host,
		Path:   c.Request().URL.Path,
	}
	q := c.Request().URL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
