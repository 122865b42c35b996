package repository

import (
	"storehub/internal/httpapi/models"
	"storehub/internal/httpapi/query"

	"gorm.io/gorm"
)

type StoreRepository interface {
	// CreateWithOwner inserts the store and promotes its owner to
	// STORE_OWNER in one transaction. Both writes succeed or neither does.
	CreateWithOwner(store *models.Store) error
	FindByID(id int64) (*models.Store, error)
	FindByEmail(email string) (*models.Store, error)
	// FindByOwner is the only lookup the store-owner surface uses: the
	// store is always addressed by the caller's own id.
	FindByOwner(ownerID string) (*models.Store, error)
	List(filter query.StoreFilter, sort query.Sort, page query.Pagination) ([]models.Store, int64, error)
	ListAll(filter query.StoreFilter, sort query.Sort) ([]models.Store, error)
	Count() (int64, error)
}

type storeRepository struct {
	db *gorm.DB
}

func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) CreateWithOwner(store *models.Store) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(store).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", store.OwnerID).
			Update("role", models.RoleStoreOwner).Error
	})
}

func (r *storeRepository) FindByID(id int64) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindByEmail(email string) (*models.Store, error) {
	var store models.Store
	if err := r.db.Where("email = ?", email).First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) FindByOwner(ownerID string) (*models.Store, error) {
	var store models.Store
	err := r.db.Where("owner_id = ?", ownerID).
		Preload("Ratings", func(db *gorm.DB) *gorm.DB {
			return db.Order("ratings.created_at DESC")
		}).
		Preload("Ratings.User").
		First(&store).Error
	if err != nil {
		return nil, err
	}
	return &store, nil
}

func (r *storeRepository) List(filter query.StoreFilter, sort query.Sort, page query.Pagination) ([]models.Store, int64, error) {
	var stores []models.Store
	var total int64

	base := applyStoreFilter(r.db.Model(&models.Store{}), filter)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyStoreFilter(r.db, filter).
		Preload("Ratings").
		Preload("Owner").
		Order(sort.Clause()).
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&stores).Error
	if err != nil {
		return nil, 0, err
	}

	return stores, total, nil
}

func (r *storeRepository) ListAll(filter query.StoreFilter, sort query.Sort) ([]models.Store, error) {
	var stores []models.Store
	db := applyStoreFilter(r.db, filter).Preload("Ratings").Preload("Owner")
	if !sort.Derived() {
		db = db.Order(sort.Clause())
	}
	if err := db.Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

func (r *storeRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Store{}).Count(&count).Error
	return count, err
}

func applyStoreFilter(db *gorm.DB, f query.StoreFilter) *gorm.DB {
	if f.Name != "" {
		db = db.Where("name ILIKE ?", "%"+f.Name+"%")
	}
	if f.Email != "" {
		db = db.Where("email ILIKE ?", "%"+f.Email+"%")
	}
	if f.Address != "" {
		db = db.Where("address ILIKE ?", "%"+f.Address+"%")
	}
	return db
}
