package service

import (
	"errors"

	"storehub/internal/httpapi/dto"
	"storehub/internal/httpapi/models"
	"storehub/internal/httpapi/query"
	"storehub/internal/httpapi/repository"

	"gorm.io/gorm"
)

var (
	ErrStoreNotFound  = errors.New("store not found")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrRatingConflict = errors.New("conflicting rating submission")
)

type RatingService interface {
	// SubmitRating upserts the caller's rating for a store. The returned
	// flag distinguishes a first submission from an overwrite and is used
	// only to pick the response message.
	SubmitRating(userID string, storeID int64, value int) (*models.Rating, bool, error)
	History(userID string, page query.Pagination) (*dto.UserRatingsResponse, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	storeRepo  repository.StoreRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, storeRepo repository.StoreRepository) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		storeRepo:  storeRepo,
	}
}

func (s *ratingService) SubmitRating(userID string, storeID int64, value int) (*models.Rating, bool, error) {
	// Range is validated at the binding layer too; the ledger rejects
	// out-of-range values regardless.
	if value < 1 || value > 5 {
		return nil, false, ErrInvalidRating
	}

	if _, err := s.storeRepo.FindByID(storeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, ErrStoreNotFound
		}
		return nil, false, err
	}

	existing, err := s.ratingRepo.FindByUserAndStore(userID, storeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if existing != nil {
		existing.Value = value
		if err := s.ratingRepo.Update(existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	rating := &models.Rating{
		Value:   value,
		UserID:  userID,
		StoreID: storeID,
	}
	if err := s.ratingRepo.Create(rating); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a create/create race for the same (user, store) pair:
			// the other submission landed first, so retry once as an update.
			return s.retryAsUpdate(userID, storeID, value)
		}
		return nil, false, err
	}

	// Reload so the response carries the store association.
	rating, err = s.ratingRepo.FindByUserAndStore(userID, storeID)
	if err != nil {
		return nil, false, err
	}
	return rating, true, nil
}

func (s *ratingService) retryAsUpdate(userID string, storeID int64, value int) (*models.Rating, bool, error) {
	existing, err := s.ratingRepo.FindByUserAndStore(userID, storeID)
	if err != nil {
		return nil, false, ErrRatingConflict
	}
	existing.Value = value
	if err := s.ratingRepo.Update(existing); err != nil {
		return nil, false, ErrRatingConflict
	}
	return existing, false, nil
}

// History returns the caller's own ratings, most recently updated first.
func (s *ratingService) History(userID string, page query.Pagination) (*dto.UserRatingsResponse, error) {
	ratings, total, err := s.ratingRepo.ListByUser(userID, page)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.UserRatingRow, 0, len(ratings))
	for i := range ratings {
		r := &ratings[i]
		rows = append(rows, dto.UserRatingRow{
			ID:        r.ID,
			Value:     r.Value,
			CreatedAt: r.CreatedAt,
			UpdatedAt: r.UpdatedAt,
			Store: dto.StoreRef{
				ID:      r.Store.ID,
				Name:    r.Store.Name,
				Address: r.Store.Address,
			},
		})
	}

	return &dto.UserRatingsResponse{
		Ratings:    rows,
		Pagination: query.NewPageMeta(page, total),
	}, nil
}
