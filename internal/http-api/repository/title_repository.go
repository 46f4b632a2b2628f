package repository

import (
	"context"

	"ratehub/internal/http-api/models"

	"gorm.io/gorm"
)

// ratingSelect annotates each title row with the rounded average of its
// review scores. The aggregate runs on every read so the rating always
// reflects the current review set; NULL means no reviews.
const ratingSelect = "titles.*, (SELECT ROUND(AVG(r.score)) FROM reviews r WHERE r.title_id = titles.id) AS rating"

// TitleFilter mirrors the public list filters: substring on name, exact
// year, genre slug and category slug.
type TitleFilter struct {
	Name     string
	Year     *int
	Genre    string
	Category string
}

type TitleRepository interface {
	List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, title *models.Title) error
	Save(ctx context.Context, title *models.Title) error
	ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error
	Delete(ctx context.Context, id int64) (int64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) filtered(ctx context.Context, filter TitleFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&models.Title{})
	if filter.Name != "" {
		query = query.Where("titles.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		query = query.Where("titles.year = ?", *filter.Year)
	}
	if filter.Genre != "" {
		query = query.
			Joins("JOIN title_genres tg ON tg.title_id = titles.id").
			Joins("JOIN genres g ON g.id = tg.genre_id").
			Where("g.slug = ?", filter.Genre)
	}
	if filter.Category != "" {
		query = query.
			Joins("JOIN categories c ON c.id = titles.category_id").
			Where("c.slug = ?", filter.Category)
	}
	return query
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	var titles []models.Title
	var total int64

	if err := r.filtered(ctx, filter).Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.filtered(ctx, filter).
		Select(ratingSelect).
		Preload("Category").
		Preload("Genres").
		Order("titles.name asc").
		Limit(pageSize).
		Offset(offset).
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

func (r *titleRepository) GetByID(ctx context.Context, id int64) (*models.Title, error) {
	var title models.Title
	err := r.db.WithContext(ctx).
		Select(ratingSelect).
		Preload("Category").
		Preload("Genres").
		Where("titles.id = ?", id).
		First(&title).Error
	if err != nil {
		return nil, err
	}
	return &title, nil
}

func (r *titleRepository) Create(ctx context.Context, title *models.Title) error {
	return r.db.WithContext(ctx).Create(title).Error
}

func (r *titleRepository) Save(ctx context.Context, title *models.Title) error {
	// Omit associations so genre updates go through ReplaceGenres only
	return r.db.WithContext(ctx).Omit("Genres", "Category").Save(title).Error
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, title *models.Title, genres []models.Genre) error {
	return r.db.WithContext(ctx).Model(title).Association("Genres").Replace(genres)
}

// Delete cascades to the title's reviews and their comments through the
// foreign-key constraints.
func (r *titleRepository) Delete(ctx context.Context, id int64) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	return result.RowsAffected, result.Error
}
