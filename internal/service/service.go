// Package service implements the review domain on top of the repositories.
//
// Services take the acting user (nil for anonymous), enforce the access
// policy, validate input and translate persistence errors into the
// internal/errors taxonomy.
package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "yamdb/internal/errors"
	"yamdb/internal/repository"
)

// MaxPageSize caps page_size on every list endpoint.
const MaxPageSize = 100

// ListOptions selects a 1-based page.
type ListOptions struct {
	Page     int
	PageSize int
}

func (o ListOptions) window() repository.Page {
	size := o.PageSize
	if size <= 0 {
		size = 10
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	page := o.Page
	if page < 1 {
		page = 1
	}
	return repository.Page{Offset: (page - 1) * size, Limit: size}
}

// ListResult is one page of a listing plus the total match count.
type ListResult[T any] struct {
	Items []T
	Total int64
}

// paged builds a ListResult, rejecting pages past the end. Page 1 always exists.
func paged[T any](opts ListOptions, items []T, total int64) (*ListResult[T], error) {
	if opts.Page < 1 {
		return nil, fmt.Errorf("invalid page: %w", apperrors.ErrNotFound)
	}
	if opts.Page > 1 && int64(opts.window().Offset) >= total {
		return nil, fmt.Errorf("invalid page: %w", apperrors.ErrNotFound)
	}
	if items == nil {
		items = []T{}
	}
	return &ListResult[T]{Items: items, Total: total}, nil
}

// notFound reports a missing record as "<what> not found".
func notFound(what string) error {
	return fmt.Errorf("%s %w", what, apperrors.ErrNotFound)
}

// translate maps record-not-found to ErrNotFound and wraps anything else.
func translate(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(what)
	}
	return fmt.Errorf("%s: %w", what, err)
}

// isNotFound reports a missing record at either layer.
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, apperrors.ErrNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
