package repository

import (
	"context"

	"gorm.io/gorm"

	"yamdb/internal/model"
)

// CategoryRepository persists categories, addressed by slug.
type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error
	FindBySlug(ctx context.Context, slug string) (*model.Category, error)
	List(ctx context.Context, search string, page Page) ([]model.Category, int64, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

// GenreRepository persists genres, addressed by slug.
type GenreRepository interface {
	Create(ctx context.Context, genre *model.Genre) error
	FindBySlug(ctx context.Context, slug string) (*model.Genre, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]model.Genre, error)
	List(ctx context.Context, search string, page Page) ([]model.Genre, int64, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

// slugged is the shared implementation for categories and genres.
type slugged[T model.Category | model.Genre] struct {
	db *gorm.DB
}

func (r *slugged[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *slugged[T]) FindBySlug(ctx context.Context, slug string) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *slugged[T]) List(ctx context.Context, search string, page Page) ([]T, int64, error) {
	q := r.db.WithContext(ctx).Model(new(T))
	if search != "" {
		q = q.Where("LOWER(name) LIKE ?", containsPattern(search))
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []T
	if err := page.apply(q).Order("name").Order("id").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

type categoryRepository struct {
	slugged[model.Category]
}

// NewCategoryRepository builds a GORM-backed repository.
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{slugged[model.Category]{db: db}}
}

type genreRepository struct {
	slugged[model.Genre]
}

// NewGenreRepository builds a GORM-backed repository.
func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{slugged[model.Genre]{db: db}}
}

// DeleteBySlug detaches the category from its titles and removes it.
func (r *categoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category model.Category
		if err := tx.Where("slug = ?", slug).First(&category).Error; err != nil {
			return err
		}
		err := tx.Model(&model.Title{}).Where("category_id = ?", category.ID).Update("category_id", nil).Error
		if err != nil {
			return err
		}
		return deleted(tx.Delete(&category))
	})
}

// DeleteBySlug unlinks the genre from its titles and removes it.
func (r *genreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var genre model.Genre
		if err := tx.Where("slug = ?", slug).First(&genre).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM title_genres WHERE genre_id = ?", genre.ID).Error; err != nil {
			return err
		}
		return deleted(tx.Delete(&genre))
	})
}

// FindBySlugs returns the genres matching slugs; unknown slugs are simply absent.
func (r *genreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]model.Genre, error) {
	var genres []model.Genre
	if len(slugs) == 0 {
		return genres, nil
	}
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&genres).Error; err != nil {
		return nil, err
	}
	return genres, nil
}
