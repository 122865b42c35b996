package dto

import (
	"time"

	"storehub/internal/httpapi/query"
)

// OwnerRatingsQuery paginates a store owner's view of who rated their store.
type OwnerRatingsQuery struct {
	Page      int    `form:"page,default=1" binding:"omitempty,gte=1"`
	Limit     int    `form:"limit,default=10" binding:"omitempty,gte=1,lte=100"`
	SortBy    string `form:"sortBy,default=createdAt" binding:"omitempty,oneof=createdAt rating userName userEmail"`
	SortOrder string `form:"sortOrder,default=desc" binding:"omitempty,oneof=asc desc"`
}

type RaterRef struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address,omitempty"`
}

type StoreRatingRow struct {
	ID        int64     `json:"id"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      RaterRef  `json:"user"`
}

type StoreDashboardResponse struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	Address       string           `json:"address"`
	AverageRating float64          `json:"averageRating"`
	TotalRatings  int64            `json:"totalRatings"`
	Ratings       []StoreRatingRow `json:"ratings"`
}

type StoreInfoResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	CreatedAt     time.Time `json:"created_at"`
	AverageRating float64   `json:"averageRating"`
	TotalRatings  int64     `json:"totalRatings"`
}

type StoreRatingsResponse struct {
	Ratings    []StoreRatingRow `json:"ratings"`
	Pagination query.PageMeta   `json:"pagination"`
}
