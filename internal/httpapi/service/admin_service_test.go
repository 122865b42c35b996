package service

import (
	"context"
	"testing"
	"time"

	"storehub/internal/httpapi/dto"
	"storehub/internal/httpapi/models"
	"storehub/internal/httpapi/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newAdminServiceForTest(
	userRepo *MockUserRepository,
	storeRepo *MockStoreRepository,
	ratingRepo *MockRatingRepository,
) AdminService {
	// nil redis client: the dashboard degrades to direct counts
	return NewAdminService(userRepo, storeRepo, ratingRepo, nil, 30*time.Second)
}

func TestAdminDashboard_CountsWithoutCache(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockStoreRepo := new(MockStoreRepository)
	mockRatingRepo := new(MockRatingRepository)
	adminService := newAdminServiceForTest(mockUserRepo, mockStoreRepo, mockRatingRepo)

	mockUserRepo.On("Count").Return(int64(12), nil)
	mockStoreRepo.On("Count").Return(int64(4), nil)
	mockRatingRepo.On("Count").Return(int64(31), nil)

	resp, err := adminService.Dashboard(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(12), resp.TotalUsers)
	assert.Equal(t, int64(4), resp.TotalStores)
	assert.Equal(t, int64(31), resp.TotalRatings)
}

func TestAdminCreateUser_DefaultsRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	adminService := newAdminServiceForTest(mockUserRepo, new(MockStoreRepository), new(MockRatingRepository))

	mockUserRepo.On("FindByEmail", "new@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := adminService.CreateUser(dto.AdminCreateUserRequest{
		Name:     "Brand New Platform User Account",
		Email:    "New@Example.com",
		Password: "Password1!",
		Address:  "5 Elm Street",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.Equal(t, "new@example.com", user.Email)
}

func TestAdminCreateUser_ExplicitAdminRole(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	adminService := newAdminServiceForTest(mockUserRepo, new(MockStoreRepository), new(MockRatingRepository))

	mockUserRepo.On("FindByEmail", "root@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil)

	user, err := adminService.CreateUser(dto.AdminCreateUserRequest{
		Name:     "Second Platform Administrator Account",
		Email:    "root@example.com",
		Password: "Password1!",
		Role:     models.RoleAdmin,
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func adminUsersFixture() []models.User {
	return []models.User{
		{
			ID:   "user-plain",
			Name: "Plain User Without Any Store",
			Role: models.RoleUser,
		},
		{
			ID:   "owner-high",
			Name: "Owner Of The Well Rated Store",
			Role: models.RoleStoreOwner,
			OwnedStore: &models.Store{
				ID:   1,
				Name: "Corner Books And Coffee House",
				Ratings: []models.Rating{
					{ID: 1, Value: 5},
					{ID: 2, Value: 4},
				},
			},
		},
		{
			ID:   "owner-low",
			Name: "Owner Of The Poorly Rated Store",
			Role: models.RoleStoreOwner,
			OwnedStore: &models.Store{
				ID:   2,
				Name: "Harbor Lights General Store",
				Ratings: []models.Rating{
					{ID: 3, Value: 2},
				},
			},
		},
	}
}

func TestAdminListUsers_MinRatingFiltersOnAverage(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	adminService := newAdminServiceForTest(mockUserRepo, new(MockStoreRepository), new(MockRatingRepository))

	minRating := 4.0
	mockUserRepo.On("ListAll", mock.AnythingOfType("query.UserFilter"), mock.AnythingOfType("query.Sort")).
		Return(adminUsersFixture(), nil)

	resp, err := adminService.ListUsers(dto.ListUsersQuery{
		MinRating: &minRating,
		Page:      1,
		Limit:     10,
		SortBy:    "name",
		SortOrder: "asc",
	})

	assert.NoError(t, err)
	assert.Len(t, resp.Users, 1)
	assert.Equal(t, "owner-high", resp.Users[0].ID)
	assert.Equal(t, int64(1), resp.Pagination.Total, "totals reflect the filtered set")
	mockUserRepo.AssertNotCalled(t, "List")
}

func TestAdminListUsers_RatingSortRanksStorelessUsersAtZero(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	adminService := newAdminServiceForTest(mockUserRepo, new(MockStoreRepository), new(MockRatingRepository))

	mockUserRepo.On("ListAll", mock.AnythingOfType("query.UserFilter"), mock.AnythingOfType("query.Sort")).
		Return(adminUsersFixture(), nil)

	resp, err := adminService.ListUsers(dto.ListUsersQuery{
		Page:      1,
		Limit:     10,
		SortBy:    "rating",
		SortOrder: "desc",
	})

	assert.NoError(t, err)
	assert.Len(t, resp.Users, 3)
	assert.Equal(t, "owner-high", resp.Users[0].ID)
	assert.Equal(t, "owner-low", resp.Users[1].ID)
	assert.Equal(t, "user-plain", resp.Users[2].ID, "no store ranks as zero")
}

func TestAdminListUsers_StoredColumnSortStaysInSQL(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	adminService := newAdminServiceForTest(mockUserRepo, new(MockStoreRepository), new(MockRatingRepository))

	mockUserRepo.On("List",
		mock.AnythingOfType("query.UserFilter"),
		query.NewSort("email", "desc"),
		query.NewPagination(2, 5),
	).Return(adminUsersFixture()[:1], int64(11), nil)

	resp, err := adminService.ListUsers(dto.ListUsersQuery{
		Page:      2,
		Limit:     5,
		SortBy:    "email",
		SortOrder: "desc",
	})

	assert.NoError(t, err)
	assert.Len(t, resp.Users, 1)
	assert.Equal(t, int64(11), resp.Pagination.Total)
	assert.Equal(t, 3, resp.Pagination.Pages)
	mockUserRepo.AssertNotCalled(t, "ListAll")
}

func createStoreRequest() dto.CreateStoreRequest {
	return dto.CreateStoreRequest{
		Name:    "Corner Books And Coffee House",
		Email:   "Store@Example.com",
		Address: "2 Main Street",
		OwnerID: "owner-1",
	}
}

func TestAdminCreateStore_Success(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockStoreRepo := new(MockStoreRepository)
	adminService := newAdminServiceForTest(mockUserRepo, mockStoreRepo, new(MockRatingRepository))

	mockStoreRepo.On("FindByEmail", "store@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByID", "owner-1").Return(&models.User{
		ID:   "owner-1",
		Name: "Future Store Owner Person Name",
		Role: models.RoleUser,
	}, nil)
	mockStoreRepo.On("CreateWithOwner", mock.AnythingOfType("*models.Store")).Return(nil)

	row, err := adminService.CreateStore(createStoreRequest())

	assert.NoError(t, err)
	assert.Equal(t, "store@example.com", row.Email)
	assert.Equal(t, "owner-1", row.Owner.ID)
	mockStoreRepo.AssertExpectations(t)
}

func TestAdminCreateStore_DuplicateEmail(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockStoreRepo := new(MockStoreRepository)
	adminService := newAdminServiceForTest(mockUserRepo, mockStoreRepo, new(MockRatingRepository))

	mockStoreRepo.On("FindByEmail", "store@example.com").Return(&models.Store{ID: 1}, nil)

	_, err := adminService.CreateStore(createStoreRequest())

	assert.ErrorIs(t, err, ErrStoreEmailInUse)
	mockStoreRepo.AssertNotCalled(t, "CreateWithOwner")
}

func TestAdminCreateStore_OwnerAlreadyHasStore(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockStoreRepo := new(MockStoreRepository)
	adminService := newAdminServiceForTest(mockUserRepo, mockStoreRepo, new(MockRatingRepository))

	mockStoreRepo.On("FindByEmail", "store@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByID", "owner-1").Return(&models.User{
		ID:         "owner-1",
		Role:       models.RoleStoreOwner,
		OwnedStore: &models.Store{ID: 9},
	}, nil)

	_, err := adminService.CreateStore(createStoreRequest())

	assert.ErrorIs(t, err, ErrOwnerHasStore)
	mockStoreRepo.AssertNotCalled(t, "CreateWithOwner")
}

func TestAdminCreateStore_OwnerMissing(t *testing.T) {
	mockUserRepo := new(MockUserRepository)
	mockStoreRepo := new(MockStoreRepository)
	adminService := newAdminServiceForTest(mockUserRepo, mockStoreRepo, new(MockRatingRepository))

	mockStoreRepo.On("FindByEmail", "store@example.com").Return(nil, gorm.ErrRecordNotFound)
	mockUserRepo.On("FindByID", "owner-1").Return(nil, gorm.ErrRecordNotFound)

	_, err := adminService.CreateStore(createStoreRequest())

	assert.ErrorIs(t, err, ErrOwnerNotFound)
}

func TestAdminListStores_RatingSortAggregates(t *testing.T) {
	mockStoreRepo := new(MockStoreRepository)
	adminService := newAdminServiceForTest(new(MockUserRepository), mockStoreRepo, new(MockRatingRepository))

	mockStoreRepo.On("ListAll", mock.AnythingOfType("query.StoreFilter"), mock.AnythingOfType("query.Sort")).
		Return([]models.Store{
			{ID: 1, Name: "Corner Books And Coffee House", Ratings: []models.Rating{{Value: 3}}},
			{ID: 2, Name: "Harbor Lights General Store", Ratings: []models.Rating{{Value: 5}}},
		}, nil)

	resp, err := adminService.ListStores(dto.ListStoresQuery{
		Page:      1,
		Limit:     10,
		SortBy:    "rating",
		SortOrder: "desc",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(2), resp.Stores[0].ID)
	assert.Equal(t, 5.0, resp.Stores[0].AverageRating)
	assert.Equal(t, int64(1), resp.Stores[1].ID)
}
