package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Platform roles. A USER becomes a STORE_OWNER when an admin creates a
// store naming them as owner.
const (
	RoleAdmin      = "ADMIN"
	RoleUser       = "USER"
	RoleStoreOwner = "STORE_OWNER"
)

type User struct {
	ID        string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"` // stored lowercase
	Password  string    `gorm:"column:password_hash;not null" json:"-"`
	Address   string    `json:"address"`
	Role      string    `gorm:"default:'USER';not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// A user owns at most one store (unique index on stores.owner_id).
	OwnedStore *Store `json:"owned_store,omitempty" gorm:"foreignKey:OwnerID"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
