package service

import (
	"errors"
	"sort"

	"storehub/internal/httpapi/dto"
	"storehub/internal/httpapi/models"
	"storehub/internal/httpapi/query"
	"storehub/internal/httpapi/repository"

	"gorm.io/gorm"
)

type StoreService interface {
	// Browse is the end-user store listing with the viewer's own rating
	// annotated on each row.
	Browse(viewerID string, filter query.StoreFilter, sort query.Sort, page query.Pagination) (*dto.BrowseStoresResponse, error)
	// Dashboard, Info and Ratings are owner-scoped: the store is always
	// resolved from the caller's identity, never from a request parameter.
	Dashboard(ownerID string) (*dto.StoreDashboardResponse, error)
	Info(ownerID string) (*dto.StoreInfoResponse, error)
	Ratings(ownerID string, sort query.Sort, page query.Pagination) (*dto.StoreRatingsResponse, error)
}

type storeService struct {
	storeRepo  repository.StoreRepository
	ratingRepo repository.RatingRepository
}

func NewStoreService(storeRepo repository.StoreRepository, ratingRepo repository.RatingRepository) StoreService {
	return &storeService{
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
	}
}

func (s *storeService) Browse(viewerID string, filter query.StoreFilter, srt query.Sort, page query.Pagination) (*dto.BrowseStoresResponse, error) {
	// Sorting by the computed average cannot be pushed into SQL: fetch the
	// full candidate set, aggregate every row, then sort and paginate in
	// memory. Stored-column sorts paginate at the storage layer instead.
	if srt.Derived() {
		stores, err := s.storeRepo.ListAll(filter, srt)
		if err != nil {
			return nil, err
		}
		rows := browseRows(stores, viewerID)
		sortBrowseRows(rows, srt.Order)
		total := int64(len(rows))
		lo, hi := page.Window(len(rows))
		return &dto.BrowseStoresResponse{
			Stores:     rows[lo:hi],
			Pagination: query.NewPageMeta(page, total),
		}, nil
	}

	stores, total, err := s.storeRepo.List(filter, srt, page)
	if err != nil {
		return nil, err
	}
	return &dto.BrowseStoresResponse{
		Stores:     browseRows(stores, viewerID),
		Pagination: query.NewPageMeta(page, total),
	}, nil
}

func browseRows(stores []models.Store, viewerID string) []dto.BrowseStoreRow {
	rows := make([]dto.BrowseStoreRow, 0, len(stores))
	for i := range stores {
		st := &stores[i]
		summary := Summarize(st.Ratings, viewerID)
		rows = append(rows, dto.BrowseStoreRow{
			ID:            st.ID,
			Name:          st.Name,
			Address:       st.Address,
			AverageRating: summary.Average,
			UserRating:    summary.ViewerValue,
			CreatedAt:     st.CreatedAt,
		})
	}
	return rows
}

func sortBrowseRows(rows []dto.BrowseStoreRow, order query.SortOrder) {
	sort.SliceStable(rows, func(i, j int) bool {
		if order == query.Asc {
			return rows[i].AverageRating < rows[j].AverageRating
		}
		return rows[i].AverageRating > rows[j].AverageRating
	})
}

func (s *storeService) Dashboard(ownerID string) (*dto.StoreDashboardResponse, error) {
	store, err := s.storeRepo.FindByOwner(ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	summary := Summarize(store.Ratings, "")
	rows := make([]dto.StoreRatingRow, 0, len(store.Ratings))
	for i := range store.Ratings {
		r := &store.Ratings[i]
		rows = append(rows, dto.StoreRatingRow{
			ID:        r.ID,
			Value:     r.Value,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			User: dto.RaterRef{
				ID:    r.User.ID,
				Name:  r.User.Name,
				Email: r.User.Email,
			},
		})
	}

	return &dto.StoreDashboardResponse{
		ID:            store.ID,
		Name:          store.Name,
		Email:         store.Email,
		Address:       store.Address,
		AverageRating: summary.Average,
		TotalRatings:  summary.Count,
		Ratings:       rows,
	}, nil
}

func (s *storeService) Info(ownerID string) (*dto.StoreInfoResponse, error) {
	store, err := s.storeRepo.FindByOwner(ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	summary := Summarize(store.Ratings, "")
	return &dto.StoreInfoResponse{
		ID:            store.ID,
		Name:          store.Name,
		Email:         store.Email,
		Address:       store.Address,
		CreatedAt:     store.CreatedAt,
		AverageRating: summary.Average,
		TotalRatings:  summary.Count,
	}, nil
}

func (s *storeService) Ratings(ownerID string, srt query.Sort, page query.Pagination) (*dto.StoreRatingsResponse, error) {
	store, err := s.storeRepo.FindByOwner(ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreNotFound
		}
		return nil, err
	}

	ratings, total, err := s.ratingRepo.ListByStore(store.ID, srt, page)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.StoreRatingRow, 0, len(ratings))
	for i := range ratings {
		r := &ratings[i]
		rows = append(rows, dto.StoreRatingRow{
			ID:        r.ID,
			Value:     r.Value,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			User: dto.RaterRef{
				ID:      r.User.ID,
				Name:    r.User.Name,
				Email:   r.User.Email,
				Address: r.User.Address,
			},
		})
	}

	return &dto.StoreRatingsResponse{
		Ratings:    rows,
		Pagination: query.NewPageMeta(page, total),
	}, nil
}
