package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"storehub/internal/auth"
	"storehub/internal/cache"
	"storehub/internal/httpapi/dto"
	"storehub/internal/httpapi/models"
	"storehub/internal/httpapi/query"
	"storehub/internal/httpapi/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrOwnerNotFound    = errors.New("owner not found")
	ErrStoreEmailInUse  = errors.New("store email already in use")
	ErrOwnerHasStore    = errors.New("user is already a store owner")
	ErrAdminUserMissing = errors.New("user not found")
)

const dashboardCacheKey = "admin:dashboard"

type AdminService interface {
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	CreateUser(req dto.AdminCreateUserRequest) (*models.User, error)
	ListUsers(q dto.ListUsersQuery) (*dto.UserListResponse, error)
	GetUser(id string) (*dto.ProfileResponse, error)
	CreateStore(req dto.CreateStoreRequest) (*dto.AdminStoreRow, error)
	ListStores(q dto.ListStoresQuery) (*dto.StoreListResponse, error)
}

type adminService struct {
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
	rdb        *redis.Client
	cacheTTL   time.Duration
}

func NewAdminService(
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	ratingRepo repository.RatingRepository,
	rdb *redis.Client,
	cacheTTL time.Duration,
) AdminService {
	return &adminService{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		rdb:        rdb,
		cacheTTL:   cacheTTL,
	}
}

// Dashboard returns platform-wide counts, cached briefly in Redis since the
// exact numbers tolerate a little staleness.
func (s *adminService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	if s.rdb != nil {
		var cached dto.DashboardResponse
		found, err := cache.Get(ctx, s.rdb, dashboardCacheKey, &cached)
		if err == nil && found {
			return &cached, nil
		}
	}

	totalUsers, err := s.userRepo.Count()
	if err != nil {
		return nil, err
	}
	totalStores, err := s.storeRepo.Count()
	if err != nil {
		return nil, err
	}
	totalRatings, err := s.ratingRepo.Count()
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{
		TotalUsers:   totalUsers,
		TotalStores:  totalStores,
		TotalRatings: totalRatings,
	}

	if s.rdb != nil {
		if err := cache.Set(ctx, s.rdb, dashboardCacheKey, resp, s.cacheTTL); err != nil {
			logrus.WithError(err).Warn("failed to cache dashboard counts")
		}
	}
	return resp, nil
}

func (s *adminService) CreateUser(req dto.AdminCreateUserRequest) (*models.User, error) {
	if !passwordStrongEnough(req.Password) {
		return nil, ErrWeakPassword
	}

	email := strings.ToLower(req.Email)
	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailInUse
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Name:     req.Name,
		Email:    email,
		Password: hashedPassword,
		Address:  req.Address,
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return user, nil
}

func (s *adminService) ListUsers(q dto.ListUsersQuery) (*dto.UserListResponse, error) {
	filter := query.UserFilter{
		Name:      q.Name,
		Email:     q.Email,
		Address:   q.Address,
		Role:      q.Role,
		MinRating: q.MinRating,
	}
	srt := query.NewSort(q.SortBy, q.SortOrder)
	page := query.NewPagination(q.Page, q.Limit)

	// MinRating thresholds and rating sorts operate on the derived average,
	// so the whole candidate set is loaded and the listing is filtered,
	// sorted and paginated in memory. Known not to scale; kept for correct
	// page totals.
	if filter.MinRating != nil || srt.Derived() {
		users, err := s.userRepo.ListAll(filter, srt)
		if err != nil {
			return nil, err
		}

		rows := userRows(users)
		if filter.MinRating != nil {
			kept := rows[:0]
			for _, row := range rows {
				if row.OwnedStore != nil && row.OwnedStore.AverageRating >= *filter.MinRating {
					kept = append(kept, row)
				}
			}
			rows = kept
		}
		if srt.Derived() {
			sortUserRows(rows, srt.Order)
		}

		total := int64(len(rows))
		lo, hi := page.Window(len(rows))
		return &dto.UserListResponse{
			Users:      rows[lo:hi],
			Pagination: query.NewPageMeta(page, total),
		}, nil
	}

	users, total, err := s.userRepo.List(filter, srt, page)
	if err != nil {
		return nil, err
	}
	return &dto.UserListResponse{
		Users:      userRows(users),
		Pagination: query.NewPageMeta(page, total),
	}, nil
}

func userRows(users []models.User) []dto.AdminUserRow {
	rows := make([]dto.AdminUserRow, 0, len(users))
	for i := range users {
		u := &users[i]
		row := dto.AdminUserRow{UserResponse: dto.FromUserModel(u)}
		if u.OwnedStore != nil {
			summary := Summarize(u.OwnedStore.Ratings, "")
			row.OwnedStore = &dto.OwnedStoreSummary{
				ID:            u.OwnedStore.ID,
				Name:          u.OwnedStore.Name,
				AverageRating: summary.Average,
				TotalRatings:  summary.Count,
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// sortUserRows orders by the owned store's average; users without a store
// rank as 0.
func sortUserRows(rows []dto.AdminUserRow, order query.SortOrder) {
	avg := func(row dto.AdminUserRow) float64 {
		if row.OwnedStore == nil {
			return 0
		}
		return row.OwnedStore.AverageRating
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if order == query.Asc {
			return avg(rows[i]) < avg(rows[j])
		}
		return avg(rows[i]) > avg(rows[j])
	})
}

func (s *adminService) GetUser(id string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminUserMissing
		}
		return nil, err
	}

	resp := &dto.ProfileResponse{UserResponse: dto.FromUserModel(user)}
	if user.OwnedStore != nil {
		summary := Summarize(user.OwnedStore.Ratings, "")
		resp.OwnedStore = &dto.OwnedStoreDetail{
			ID:            user.OwnedStore.ID,
			Name:          user.OwnedStore.Name,
			Email:         user.OwnedStore.Email,
			Address:       user.OwnedStore.Address,
			AverageRating: summary.Average,
			TotalRatings:  summary.Count,
		}
	}
	return resp, nil
}

// CreateStore creates the store and promotes its owner in one transaction:
// a crash between the two writes can't leave a store without a STORE_OWNER
// or a promoted user without a store.
func (s *adminService) CreateStore(req dto.CreateStoreRequest) (*dto.AdminStoreRow, error) {
	email := strings.ToLower(req.Email)
	if _, err := s.storeRepo.FindByEmail(email); err == nil {
		return nil, ErrStoreEmailInUse
	}

	owner, err := s.userRepo.FindByID(req.OwnerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOwnerNotFound
		}
		return nil, err
	}
	if owner.OwnedStore != nil {
		return nil, ErrOwnerHasStore
	}

	store := &models.Store{
		Name:    req.Name,
		Email:   email,
		Address: req.Address,
		OwnerID: req.OwnerID,
	}
	if err := s.storeRepo.CreateWithOwner(store); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStoreEmailInUse
		}
		return nil, err
	}

	return &dto.AdminStoreRow{
		ID:      store.ID,
		Name:    store.Name,
		Email:   store.Email,
		Address: store.Address,
		Owner: dto.OwnerRef{
			ID:   owner.ID,
			Name: owner.Name,
		},
		CreatedAt: store.CreatedAt,
	}, nil
}

func (s *adminService) ListStores(q dto.ListStoresQuery) (*dto.StoreListResponse, error) {
	filter := query.StoreFilter{
		Name:    q.Name,
		Email:   q.Email,
		Address: q.Address,
	}
	srt := query.NewSort(q.SortBy, q.SortOrder)
	page := query.NewPagination(q.Page, q.Limit)

	if srt.Derived() {
		stores, err := s.storeRepo.ListAll(filter, srt)
		if err != nil {
			return nil, err
		}
		rows := storeRows(stores)
		sortStoreRows(rows, srt.Order)
		total := int64(len(rows))
		lo, hi := page.Window(len(rows))
		return &dto.StoreListResponse{
			Stores:     rows[lo:hi],
			Pagination: query.NewPageMeta(page, total),
		}, nil
	}

	stores, total, err := s.storeRepo.List(filter, srt, page)
	if err != nil {
		return nil, err
	}
	return &dto.StoreListResponse{
		Stores:     storeRows(stores),
		Pagination: query.NewPageMeta(page, total),
	}, nil
}

func storeRows(stores []models.Store) []dto.AdminStoreRow {
	rows := make([]dto.AdminStoreRow, 0, len(stores))
	for i := range stores {
		st := &stores[i]
		summary := Summarize(st.Ratings, "")
		rows = append(rows, dto.AdminStoreRow{
			ID:      st.ID,
			Name:    st.Name,
			Email:   st.Email,
			Address: st.Address,
			Owner: dto.OwnerRef{
				ID:   st.Owner.ID,
				Name: st.Owner.Name,
			},
			AverageRating: summary.Average,
			TotalRatings:  summary.Count,
			CreatedAt:     st.CreatedAt,
		})
	}
	return rows
}

func sortStoreRows(rows []dto.AdminStoreRow, order query.SortOrder) {
	sort.SliceStable(rows, func(i, j int) bool {
		if order == query.Asc {
			return rows[i].AverageRating < rows[j].AverageRating
		}
		return rows[i].AverageRating > rows[j].AverageRating
	})
}
