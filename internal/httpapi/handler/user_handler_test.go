package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storehub/internal/httpapi/dto"
	"storehub/internal/httpapi/middleware"
	"storehub/internal/httpapi/models"
	"storehub/internal/httpapi/query"
	"storehub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockStoreService mocks the StoreService interface
type MockStoreService struct {
	mock.Mock
}

func (m *MockStoreService) Browse(viewerID string, filter query.StoreFilter, sort query.Sort, page query.Pagination) (*dto.BrowseStoresResponse, error) {
	args := m.Called(viewerID, filter, sort, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BrowseStoresResponse), args.Error(1)
}

func (m *MockStoreService) Dashboard(ownerID string) (*dto.StoreDashboardResponse, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StoreDashboardResponse), args.Error(1)
}

func (m *MockStoreService) Info(ownerID string) (*dto.StoreInfoResponse, error) {
	args := m.Called(ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StoreInfoResponse), args.Error(1)
}

func (m *MockStoreService) Ratings(ownerID string, sort query.Sort, page query.Pagination) (*dto.StoreRatingsResponse, error) {
	args := m.Called(ownerID, sort, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StoreRatingsResponse), args.Error(1)
}

// MockRatingService mocks the RatingService interface
type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) SubmitRating(userID string, storeID int64, value int) (*models.Rating, bool, error) {
	args := m.Called(userID, storeID, value)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*models.Rating), args.Bool(1), args.Error(2)
}

func (m *MockRatingService) History(userID string, page query.Pagination) (*dto.UserRatingsResponse, error) {
	args := m.Called(userID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.UserRatingsResponse), args.Error(1)
}

func setupUserRouter(storeService service.StoreService, ratingService service.RatingService, identity *service.Claims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if identity != nil {
		r.Use(func(c *gin.Context) {
			c.Set(middleware.IdentityKey, identity)
		})
	}
	h := NewUserHandler(storeService, ratingService)
	h.RegisterRoutes(r.Group("/api/user"))
	return r
}

func userClaims() *service.Claims {
	return &service.Claims{UserID: "user-1", Role: models.RoleUser}
}

func TestSubmitRating_CreatedMessage(t *testing.T) {
	mockRatingService := new(MockRatingService)
	router := setupUserRouter(new(MockStoreService), mockRatingService, userClaims())

	mockRatingService.On("SubmitRating", "user-1", int64(7), 4).Return(&models.Rating{
		ID:      1,
		Value:   4,
		StoreID: 7,
		Store:   models.Store{ID: 7, Name: "Corner Books And Coffee House"},
	}, true, nil)

	body := `{"rating": 4, "storeId": 7}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/ratings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.SubmitRatingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Rating submitted successfully", resp.Message)
	assert.Equal(t, "Corner Books And Coffee House", resp.Rating.StoreName)
}

func TestSubmitRating_UpdatedMessage(t *testing.T) {
	mockRatingService := new(MockRatingService)
	router := setupUserRouter(new(MockStoreService), mockRatingService, userClaims())

	mockRatingService.On("SubmitRating", "user-1", int64(7), 5).Return(&models.Rating{
		ID:      1,
		Value:   5,
		StoreID: 7,
	}, false, nil)

	body := `{"rating": 5, "storeId": 7}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/ratings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.SubmitRatingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Rating updated successfully", resp.Message)
}

func TestSubmitRating_StoreNotFound(t *testing.T) {
	mockRatingService := new(MockRatingService)
	router := setupUserRouter(new(MockStoreService), mockRatingService, userClaims())

	mockRatingService.On("SubmitRating", "user-1", int64(99), 4).
		Return(nil, false, service.ErrStoreNotFound)

	body := `{"rating": 4, "storeId": 99}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/ratings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitRating_RatingOutOfBinding(t *testing.T) {
	mockRatingService := new(MockRatingService)
	router := setupUserRouter(new(MockStoreService), mockRatingService, userClaims())

	body := `{"rating": 6, "storeId": 7}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/ratings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockRatingService.AssertNotCalled(t, "SubmitRating")
}

func TestSubmitRating_Conflict(t *testing.T) {
	mockRatingService := new(MockRatingService)
	router := setupUserRouter(new(MockStoreService), mockRatingService, userClaims())

	mockRatingService.On("SubmitRating", "user-1", int64(7), 4).
		Return(nil, false, service.ErrRatingConflict)

	body := `{"rating": 4, "storeId": 7}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/ratings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubmitRating_NoIdentity(t *testing.T) {
	mockRatingService := new(MockRatingService)
	router := setupUserRouter(new(MockStoreService), mockRatingService, nil)

	body := `{"rating": 4, "storeId": 7}`
	req := httptest.NewRequest(http.MethodPost, "/api/user/ratings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockRatingService.AssertNotCalled(t, "SubmitRating")
}

func TestBrowseStores_PassesViewerAndQuery(t *testing.T) {
	mockStoreService := new(MockStoreService)
	router := setupUserRouter(mockStoreService, new(MockRatingService), userClaims())

	viewerRating := 4
	mockStoreService.On("Browse",
		"user-1",
		query.StoreFilter{Name: "books"},
		query.NewSort("rating", "desc"),
		query.NewPagination(1, 10),
	).Return(&dto.BrowseStoresResponse{
		Stores: []dto.BrowseStoreRow{
			{ID: 1, Name: "Corner Books And Coffee House", AverageRating: 4.5, UserRating: &viewerRating},
		},
		Pagination: query.NewPageMeta(query.NewPagination(1, 10), 1),
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user/stores?name=books&sortBy=rating&sortOrder=desc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.BrowseStoresResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Stores, 1)
	assert.NotNil(t, resp.Stores[0].UserRating)
	assert.Equal(t, 4, *resp.Stores[0].UserRating)
	mockStoreService.AssertExpectations(t)
}

func TestBrowseStores_RejectsUnknownSortKey(t *testing.T) {
	mockStoreService := new(MockStoreService)
	router := setupUserRouter(mockStoreService, new(MockRatingService), userClaims())

	req := httptest.NewRequest(http.MethodGet, "/api/user/stores?sortBy=password", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockStoreService.AssertNotCalled(t, "Browse")
}

func TestHistory_ReturnsOwnRatings(t *testing.T) {
	mockRatingService := new(MockRatingService)
	router := setupUserRouter(new(MockStoreService), mockRatingService, userClaims())

	mockRatingService.On("History", "user-1", query.NewPagination(1, 10)).
		Return(&dto.UserRatingsResponse{
			Ratings: []dto.UserRatingRow{
				{ID: 1, Value: 3, Store: dto.StoreRef{ID: 7, Name: "Corner Books And Coffee House"}},
			},
			Pagination: query.NewPageMeta(query.NewPagination(1, 10), 1),
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/user/ratings", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.UserRatingsResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Ratings, 1)
}
