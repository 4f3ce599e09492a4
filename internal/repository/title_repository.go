package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"yamdb/internal/model"
)

// ratingColumn averages review scores per title; NULL when there are none.
const ratingColumn = "(SELECT AVG(reviews.score) FROM reviews WHERE reviews.title_id = titles.id) AS rating"

// TitleFilter narrows a title listing. Zero values mean no filter.
type TitleFilter struct {
	Category string
	Genre    string
	Name     string
	Year     int
}

// TitleRepository persists titles together with their genre links.
type TitleRepository interface {
	Create(ctx context.Context, title *model.Title) error
	Update(ctx context.Context, title *model.Title, replaceGenres bool) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Title, error)
	Exists(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context, filter TitleFilter, page Page) ([]model.Title, int64, error)
}

type titleRepository struct {
	db *gorm.DB
}

// NewTitleRepository builds a GORM-backed repository.
func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

// Create inserts the title and links title.Genres, which must already exist.
func (r *titleRepository) Create(ctx context.Context, title *model.Title) error {
	genres := title.Genres
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(title).Error; err != nil {
			return err
		}
		if len(genres) == 0 {
			return nil
		}
		return tx.Model(title).Association("Genres").Replace(genres)
	})
}

// Update writes the scalar columns and, when replaceGenres is set, swaps the
// genre links for title.Genres.
func (r *titleRepository) Update(ctx context.Context, title *model.Title, replaceGenres bool) error {
	genres := title.Genres
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(title).
			Select("name", "year", "description", "category_id").
			Updates(title).Error
		if err != nil {
			return err
		}
		if !replaceGenres {
			return nil
		}
		return tx.Model(title).Association("Genres").Replace(genres)
	})
}

// Delete removes the title with its genre links; reviews and comments cascade.
func (r *titleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM title_genres WHERE title_id = ?", id).Error; err != nil {
			return err
		}
		reviews := tx.Model(&model.Review{}).Select("id").Where("title_id = ?", id)
		if err := tx.Where("review_id IN (?)", reviews).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("title_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}
		return deleted(tx.Delete(&model.Title{}, id))
	})
}

// FindByID loads the title with its category, genres and current rating.
func (r *titleRepository) FindByID(ctx context.Context, id uint) (*model.Title, error) {
	var title model.Title
	err := r.withRelations(r.db.WithContext(ctx)).
		Where("titles.id = ?", id).
		First(&title).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Title{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter, page Page) ([]model.Title, int64, error) {
	q := r.filtered(r.db.WithContext(ctx).Model(&model.Title{}), filter).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var titles []model.Title
	err := page.apply(r.withRelations(q)).
		Order("titles.year DESC").
		Order("titles.id DESC").
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}
	return titles, total, nil
}

func (r *titleRepository) withRelations(q *gorm.DB) *gorm.DB {
	return q.Select("titles.*, " + ratingColumn).
		Preload("Category").
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("genres.name") })
}

func (r *titleRepository) filtered(q *gorm.DB, f TitleFilter) *gorm.DB {
	if f.Category != "" {
		q = q.Where("titles.category_id IN (?)",
			r.db.Model(&model.Category{}).Select("id").Where("slug = ?", f.Category))
	}
	if f.Genre != "" {
		q = q.Where("titles.id IN (?)",
			r.db.Table("title_genres").
				Select("title_genres.title_id").
				Joins("JOIN genres ON genres.id = title_genres.genre_id").
				Where("genres.slug = ?", f.Genre))
	}
	if f.Name != "" {
		q = q.Where("LOWER(titles.name) LIKE ?", containsPattern(f.Name))
	}
	if f.Year != 0 {
		q = q.Where("titles.year = ?", f.Year)
	}
	return q
}
