package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	apperrors "yamdb/internal/errors"
	"yamdb/internal/model"
	"yamdb/internal/permission"
	"yamdb/internal/repository"
	"yamdb/internal/validator"
)

const msgRequired = "this field is required"

// TitleFields is a title write payload. Nil fields were not supplied; a nil
// Genre leaves the genre set unchanged.
type TitleFields struct {
	Name        *string
	Year        *int
	Description *string
	Genre       []string
	Category    *string
}

// TitleService manages titles.
type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, opts ListOptions) (*ListResult[model.Title], error)
	Get(ctx context.Context, id uint) (*model.Title, error)
	Create(ctx context.Context, actor *model.User, fields TitleFields) (*model.Title, error)
	Update(ctx context.Context, actor *model.User, id uint, fields TitleFields) (*model.Title, error)
	Delete(ctx context.Context, actor *model.User, id uint) error
}

type titleService struct {
	titles     repository.TitleRepository
	categories repository.CategoryRepository
	genres     repository.GenreRepository
	log        *zap.Logger
	now        func() time.Time
}

// NewTitleService creates a TitleService.
func NewTitleService(titles repository.TitleRepository, categories repository.CategoryRepository, genres repository.GenreRepository, log *zap.Logger) TitleService {
	return &titleService{
		titles:     titles,
		categories: categories,
		genres:     genres,
		log:        orNop(log),
		now:        time.Now,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, opts ListOptions) (*ListResult[model.Title], error) {
	titles, total, err := s.titles.List(ctx, filter, opts.window())
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}
	return paged(opts, titles, total)
}

func (s *titleService) Get(ctx context.Context, id uint) (*model.Title, error) {
	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "title")
	}
	return title, nil
}

func (s *titleService) Create(ctx context.Context, actor *model.User, fields TitleFields) (*model.Title, error) {
	if err := permission.Check(actor, permission.Catalog, permission.Create, permission.NoOwner); err != nil {
		return nil, err
	}

	missing := &apperrors.ValidationError{}
	if fields.Name == nil {
		missing.Add("name", msgRequired)
	}
	if fields.Year == nil {
		missing.Add("year", msgRequired)
	}
	if len(fields.Genre) == 0 {
		missing.Add("genre", msgRequired)
	}
	if fields.Category == nil {
		missing.Add("category", msgRequired)
	}
	if missing.HasErrors() {
		return nil, missing
	}

	title := &model.Title{}
	if err := s.apply(ctx, title, fields); err != nil {
		return nil, err
	}
	if err := s.titles.Create(ctx, title); err != nil {
		return nil, fmt.Errorf("create title: %w", err)
	}
	s.log.Info("title created", zap.Uint("title_id", title.ID), zap.String("name", title.Name))
	return s.Get(ctx, title.ID)
}

func (s *titleService) Update(ctx context.Context, actor *model.User, id uint, fields TitleFields) (*model.Title, error) {
	if err := permission.Check(actor, permission.Catalog, permission.Update, permission.NoOwner); err != nil {
		return nil, err
	}
	if fields.Genre != nil && len(fields.Genre) == 0 {
		return nil, apperrors.NewValidationError("genre", msgRequired)
	}

	title, err := s.titles.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "title")
	}
	if err := s.apply(ctx, title, fields); err != nil {
		return nil, err
	}
	if err := s.titles.Update(ctx, title, fields.Genre != nil); err != nil {
		return nil, fmt.Errorf("update title: %w", err)
	}
	return s.Get(ctx, title.ID)
}

func (s *titleService) Delete(ctx context.Context, actor *model.User, id uint) error {
	if err := permission.Check(actor, permission.Catalog, permission.Delete, permission.NoOwner); err != nil {
		return err
	}
	if err := s.titles.Delete(ctx, id); err != nil {
		return translate(err, "title")
	}
	s.log.Info("title deleted", zap.Uint("title_id", id))
	return nil
}

// apply copies supplied fields onto title, resolving slugs and validating.
func (s *titleService) apply(ctx context.Context, title *model.Title, fields TitleFields) error {
	if fields.Name != nil {
		title.Name = *fields.Name
	}
	if fields.Year != nil {
		title.Year = *fields.Year
	}
	if fields.Description != nil {
		title.Description = *fields.Description
	}

	verr := &apperrors.ValidationError{}
	if fields.Category != nil {
		category, err := s.categories.FindBySlug(ctx, *fields.Category)
		switch {
		case err == nil:
			title.CategoryID = &category.ID
			title.Category = category
		case isNotFound(err):
			verr.Add("category", fmt.Sprintf("category %q does not exist", *fields.Category))
		default:
			return fmt.Errorf("find category: %w", err)
		}
	}
	if fields.Genre != nil {
		genres, err := s.resolveGenres(ctx, fields.Genre, verr)
		if err != nil {
			return err
		}
		title.Genres = genres
	}

	if err := validator.Title(title, s.now().Year()); err != nil {
		var ve *apperrors.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		for field, msgs := range ve.Fields {
			for _, msg := range msgs {
				verr.Add(field, msg)
			}
		}
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string, verr *apperrors.ValidationError) ([]model.Genre, error) {
	found, err := s.genres.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("find genres: %w", err)
	}
	bySlug := make(map[string]bool, len(found))
	for _, g := range found {
		bySlug[g.Slug] = true
	}
	for _, slug := range slugs {
		if !bySlug[slug] {
			verr.Add("genre", fmt.Sprintf("genre %q does not exist", slug))
		}
	}
	return found, nil
}
