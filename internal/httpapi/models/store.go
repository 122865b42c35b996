package models

import "time"

type Store struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Address   string    `json:"address"`
	OwnerID   string    `json:"owner_id" gorm:"type:uuid;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Owner   User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE;"`
	Ratings []Rating `json:"ratings,omitempty" gorm:"foreignKey:StoreID"`
}

func (Store) TableName() string {
	return "stores"
}
