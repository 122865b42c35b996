package dto

import (
	"time"

	"storehub/internal/httpapi/query"
)

type AdminCreateUserRequest struct {
	Name     string `json:"name" binding:"required,min=20,max=60"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=16"`
	Address  string `json:"address" binding:"max=400"`
	Role     string `json:"role" binding:"omitempty,oneof=ADMIN USER STORE_OWNER"`
}

// ListUsersQuery carries the admin user-listing filters. Sort keys are
// allow-listed here; "rating" sorts by the owned store's computed average.
type ListUsersQuery struct {
	Name      string   `form:"name"`
	Email     string   `form:"email"`
	Address   string   `form:"address"`
	Role      string   `form:"role" binding:"omitempty,oneof=ADMIN USER STORE_OWNER"`
	MinRating *float64 `form:"minRating" binding:"omitempty,gte=1,lte=5"`
	Page      int      `form:"page,default=1" binding:"omitempty,gte=1"`
	Limit     int      `form:"limit,default=10" binding:"omitempty,gte=1,lte=100"`
	SortBy    string   `form:"sortBy,default=name" binding:"omitempty,oneof=name email address role createdAt rating"`
	SortOrder string   `form:"sortOrder,default=asc" binding:"omitempty,oneof=asc desc"`
}

type CreateStoreRequest struct {
	Name    string `json:"name" binding:"required,min=20,max=60"`
	Email   string `json:"email" binding:"required,email"`
	Address string `json:"address" binding:"max=400"`
	OwnerID string `json:"ownerId" binding:"required,uuid"`
}

type ListStoresQuery struct {
	Name      string `form:"name"`
	Email     string `form:"email"`
	Address   string `form:"address"`
	Page      int    `form:"page,default=1" binding:"omitempty,gte=1"`
	Limit     int    `form:"limit,default=10" binding:"omitempty,gte=1,lte=100"`
	SortBy    string `form:"sortBy,default=name" binding:"omitempty,oneof=name email address rating createdAt"`
	SortOrder string `form:"sortOrder,default=asc" binding:"omitempty,oneof=asc desc"`
}

type DashboardResponse struct {
	TotalUsers   int64 `json:"totalUsers"`
	TotalStores  int64 `json:"totalStores"`
	TotalRatings int64 `json:"totalRatings"`
}

// OwnedStoreSummary annotates an admin user row with the owned store's
// aggregated rating.
type OwnedStoreSummary struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int64   `json:"totalRatings"`
}

type AdminUserRow struct {
	UserResponse
	OwnedStore *OwnedStoreSummary `json:"owned_store,omitempty"`
}

type UserListResponse struct {
	Users      []AdminUserRow `json:"users"`
	Pagination query.PageMeta `json:"pagination"`
}

type OwnerRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AdminStoreRow struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Address       string    `json:"address"`
	Owner         OwnerRef  `json:"owner"`
	AverageRating float64   `json:"averageRating"`
	TotalRatings  int64     `json:"totalRatings"`
	CreatedAt     time.Time `json:"created_at"`
}

type StoreListResponse struct {
	Stores     []AdminStoreRow `json:"stores"`
	Pagination query.PageMeta  `json:"pagination"`
}

type CreateStoreResponse struct {
	Message string        `json:"message"`
	Store   AdminStoreRow `json:"store"`
}
