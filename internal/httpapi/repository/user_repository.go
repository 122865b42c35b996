package repository

import (
	"storehub/internal/httpapi/models"
	"storehub/internal/httpapi/query"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(user *models.User) error
	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	UpdatePassword(id, passwordHash string) error
	// List applies the filter and stored-column sort and paginates in SQL.
	List(filter query.UserFilter, sort query.Sort, page query.Pagination) ([]models.User, int64, error)
	// ListAll fetches the whole post-filter candidate set for read paths
	// that must aggregate before sorting or filtering further.
	ListAll(filter query.UserFilter, sort query.Sort) ([]models.User, error)
	Count() (int64, error)
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository in a GORM implementation
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	// prevent returning a zero-value user struct when the row is missing
	if err := r.db.Preload("OwnedStore.Ratings").First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("OwnedStore").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(id, passwordHash string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

func (r *userRepository) List(filter query.UserFilter, sort query.Sort, page query.Pagination) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	base := applyUserFilter(r.db.Model(&models.User{}), filter)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyUserFilter(r.db, filter).
		Preload("OwnedStore.Ratings").
		Order(sort.Clause()).
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) ListAll(filter query.UserFilter, sort query.Sort) ([]models.User, error) {
	var users []models.User
	db := applyUserFilter(r.db, filter).Preload("OwnedStore.Ratings")
	if !sort.Derived() {
		db = db.Order(sort.Clause())
	}
	if err := db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

// applyUserFilter translates the filter struct into WHERE clauses.
// MinRating is intentionally absent: it is a derived-field threshold and is
// applied after aggregation by the service layer.
func applyUserFilter(db *gorm.DB, f query.UserFilter) *gorm.DB {
	if f.Name != "" {
		db = db.Where("name ILIKE ?", "%"+f.Name+"%")
	}
	if f.Email != "" {
		db = db.Where("email ILIKE ?", "%"+f.Email+"%")
	}
	if f.Address != "" {
		db = db.Where("address ILIKE ?", "%"+f.Address+"%")
	}
	if f.Role != "" {
		db = db.Where("role = ?", f.Role)
	}
	return db
}
