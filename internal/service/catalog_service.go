package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	apperrors "yamdb/internal/errors"
	"yamdb/internal/model"
	"yamdb/internal/permission"
	"yamdb/internal/repository"
	"yamdb/internal/validator"
)

// CategoryService manages categories.
type CategoryService interface {
	List(ctx context.Context, search string, opts ListOptions) (*ListResult[model.Category], error)
	Create(ctx context.Context, actor *model.User, name, slug string) (*model.Category, error)
	Delete(ctx context.Context, actor *model.User, slug string) error
}

// GenreService manages genres.
type GenreService interface {
	List(ctx context.Context, search string, opts ListOptions) (*ListResult[model.Genre], error)
	Create(ctx context.Context, actor *model.User, name, slug string) (*model.Genre, error)
	Delete(ctx context.Context, actor *model.User, slug string) error
}

type sluggedStore[T any] interface {
	Create(ctx context.Context, item *T) error
	List(ctx context.Context, search string, page repository.Page) ([]T, int64, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

type sluggedService[T any] struct {
	store sluggedStore[T]
	kind  string
	build func(name, slug string) *T
	log   *zap.Logger
}

// NewCategoryService creates a CategoryService.
func NewCategoryService(repo repository.CategoryRepository, log *zap.Logger) CategoryService {
	return &sluggedService[model.Category]{
		store: repo,
		kind:  "category",
		build: func(name, slug string) *model.Category { return &model.Category{Name: name, Slug: slug} },
		log:   orNop(log),
	}
}

// NewGenreService creates a GenreService.
func NewGenreService(repo repository.GenreRepository, log *zap.Logger) GenreService {
	return &sluggedService[model.Genre]{
		store: repo,
		kind:  "genre",
		build: func(name, slug string) *model.Genre { return &model.Genre{Name: name, Slug: slug} },
		log:   orNop(log),
	}
}

func (s *sluggedService[T]) List(ctx context.Context, search string, opts ListOptions) (*ListResult[T], error) {
	items, total, err := s.store.List(ctx, search, opts.window())
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind, err)
	}
	return paged(opts, items, total)
}

func (s *sluggedService[T]) Create(ctx context.Context, actor *model.User, name, slug string) (*T, error) {
	if err := permission.Check(actor, permission.Catalog, permission.Create, permission.NoOwner); err != nil {
		return nil, err
	}
	if err := validator.Slugged(name, slug); err != nil {
		return nil, err
	}

	item := s.build(name, slug)
	if err := s.store.Create(ctx, item); err != nil {
		if isDuplicate(err) {
			return nil, apperrors.NewValidationError("slug", fmt.Sprintf("%s with this slug already exists", s.kind))
		}
		return nil, fmt.Errorf("create %s: %w", s.kind, err)
	}
	s.log.Info(s.kind+" created", zap.String("slug", slug))
	return item, nil
}

func (s *sluggedService[T]) Delete(ctx context.Context, actor *model.User, slug string) error {
	if err := permission.Check(actor, permission.Catalog, permission.Delete, permission.NoOwner); err != nil {
		return err
	}
	if err := s.store.DeleteBySlug(ctx, slug); err != nil {
		return translate(err, s.kind)
	}
	s.log.Info(s.kind+" deleted", zap.String("slug", slug))
	return nil
}

func orNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
