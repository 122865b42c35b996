package models

import "time"

// Rating holds one user's rating of one store. The composite unique index
// is the upsert key: resubmitting overwrites the row instead of adding one.
type Rating struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Value     int       `json:"value" gorm:"not null;check:value >= 1 AND value <= 5"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_ratings_user_store"`
	StoreID   int64     `json:"store_id" gorm:"not null;uniqueIndex:idx_ratings_user_store"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User  User  `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Store Store `json:"store,omitempty" gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE;"`
}

func (Rating) TableName() string {
	return "ratings"
}
