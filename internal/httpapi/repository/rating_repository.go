package repository

import (
	"storehub/internal/httpapi/models"
	"storehub/internal/httpapi/query"

	"gorm.io/gorm"
)

type RatingRepository interface {
	Create(rating *models.Rating) error
	Update(rating *models.Rating) error
	// FindByUserAndStore looks up the single row keyed by the composite
	// identity; at most one exists per (user, store) pair.
	FindByUserAndStore(userID string, storeID int64) (*models.Rating, error)
	ListByUser(userID string, page query.Pagination) ([]models.Rating, int64, error)
	ListByStore(storeID int64, sort query.Sort, page query.Pagination) ([]models.Rating, int64, error)
	Count() (int64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) Create(rating *models.Rating) error {
	return r.db.Create(rating).Error
}

func (r *ratingRepository) Update(rating *models.Rating) error {
	return r.db.Save(rating).Error
}

func (r *ratingRepository) FindByUserAndStore(userID string, storeID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.Where("user_id = ? AND store_id = ?", userID, storeID).
		Preload("Store").
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// ListByUser returns the user's rating history, most recently updated first.
func (r *ratingRepository) ListByUser(userID string, page query.Pagination) ([]models.Rating, int64, error) {
	var ratings []models.Rating
	var total int64

	if err := r.db.Model(&models.Rating{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Where("user_id = ?", userID).
		Preload("Store").
		Order("updated_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, err
	}

	return ratings, total, nil
}

// ListByStore returns a store's ratings with the rater preloaded. Every
// supported sort key here is a stored column (the per-row value included),
// so ordering and pagination stay in SQL.
func (r *ratingRepository) ListByStore(storeID int64, sort query.Sort, page query.Pagination) ([]models.Rating, int64, error) {
	var ratings []models.Rating
	var total int64

	if err := r.db.Model(&models.Rating{}).Where("store_id = ?", storeID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db := r.db.Where("ratings.store_id = ?", storeID).Preload("User")

	dir := "asc"
	if sort.Order == query.Desc {
		dir = "desc"
	}
	switch sort.Key {
	case "userName":
		db = db.Joins("JOIN users ON users.id = ratings.user_id").Order("users.name " + dir)
	case "userEmail":
		db = db.Joins("JOIN users ON users.id = ratings.user_id").Order("users.email " + dir)
	case "rating":
		db = db.Order("ratings.value " + dir)
	default:
		db = db.Order("ratings.created_at " + dir)
	}

	err := db.Limit(page.Limit).Offset(page.Offset()).Find(&ratings).Error
	if err != nil {
		return nil, 0, err
	}

	return ratings, total, nil
}

func (r *ratingRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Rating{}).Count(&count).Error
	return count, err
}
