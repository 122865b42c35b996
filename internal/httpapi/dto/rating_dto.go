package dto

import (
	"time"

	"storehub/internal/httpapi/query"
)

// SubmitRatingRequest for creating or updating a rating
type SubmitRatingRequest struct {
	Rating  int   `json:"rating" binding:"required,min=1,max=5"`
	StoreID int64 `json:"storeId" binding:"required,gt=0"`
}

type RatingResult struct {
	ID        int64     `json:"id"`
	Value     int       `json:"value"`
	StoreID   int64     `json:"store_id"`
	StoreName string    `json:"store_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SubmitRatingResponse struct {
	Message string       `json:"message"`
	Rating  RatingResult `json:"rating"`
}

// BrowseStoresQuery filters the user-facing store listing.
type BrowseStoresQuery struct {
	Name      string `form:"name"`
	Address   string `form:"address"`
	Page      int    `form:"page,default=1" binding:"omitempty,gte=1"`
	Limit     int    `form:"limit,default=10" binding:"omitempty,gte=1,lte=100"`
	SortBy    string `form:"sortBy,default=name" binding:"omitempty,oneof=name address rating createdAt"`
	SortOrder string `form:"sortOrder,default=asc" binding:"omitempty,oneof=asc desc"`
}

// BrowseStoreRow is a store as seen by an end user: the overall average plus
// the viewer's own rating when present.
type BrowseStoreRow struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	AverageRating float64   `json:"averageRating"`
	UserRating    *int      `json:"userRating"`
	CreatedAt     time.Time `json:"created_at"`
}

type BrowseStoresResponse struct {
	Stores     []BrowseStoreRow `json:"stores"`
	Pagination query.PageMeta   `json:"pagination"`
}

type HistoryQuery struct {
	Page  int `form:"page,default=1" binding:"omitempty,gte=1"`
	Limit int `form:"limit,default=10" binding:"omitempty,gte=1,lte=100"`
}

type StoreRef struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

type UserRatingRow struct {
	ID        int64     `json:"id"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Store     StoreRef  `json:"store"`
}

type UserRatingsResponse struct {
	Ratings    []UserRatingRow `json:"ratings"`
	Pagination query.PageMeta  `json:"pagination"`
}
