package handler

import (
	"errors"
	"net/http"

	"storehub/internal/httpapi/dto"
	"storehub/internal/httpapi/middleware"
	"storehub/internal/httpapi/query"
	"storehub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// UserHandler serves the end-user surface: browsing stores and managing
// the caller's own ratings.
type UserHandler struct {
	storeService  service.StoreService
	ratingService service.RatingService
}

func NewUserHandler(storeService service.StoreService, ratingService service.RatingService) *UserHandler {
	return &UserHandler{
		storeService:  storeService,
		ratingService: ratingService,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/stores", h.BrowseStores)
	router.POST("/ratings", h.SubmitRating)
	router.GET("/ratings", h.History)
}

// BrowseStores lists stores with the caller's own rating annotated.
// GET /api/user/stores
func (h *UserHandler) BrowseStores(c *gin.Context) {
	claims, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var q dto.BrowseStoresQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	resp, err := h.storeService.Browse(
		claims.UserID,
		query.StoreFilter{Name: q.Name, Address: q.Address},
		query.NewSort(q.SortBy, q.SortOrder),
		query.NewPagination(q.Page, q.Limit),
	)
	if err != nil {
		logrus.WithError(err).Error("store browse failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SubmitRating creates or updates the caller's rating for a store.
// POST /api/user/ratings
func (h *UserHandler) SubmitRating(c *gin.Context) {
	claims, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	rating, created, err := h.ratingService.SubmitRating(claims.UserID, req.StoreID, req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrStoreNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
		case errors.Is(err, service.ErrRatingConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "conflicting rating submission, please retry"})
		default:
			logrus.WithError(err).Error("rating submission failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	message := "Rating updated successfully"
	if created {
		message = "Rating submitted successfully"
	}

	c.JSON(http.StatusOK, dto.SubmitRatingResponse{
		Message: message,
		Rating: dto.RatingResult{
			ID:        rating.ID,
			Value:     rating.Value,
			StoreID:   rating.StoreID,
			StoreName: rating.Store.Name,
			CreatedAt: rating.CreatedAt,
			UpdatedAt: rating.UpdatedAt,
		},
	})
}

// History lists the caller's own ratings.
// GET /api/user/ratings
func (h *UserHandler) History(c *gin.Context) {
	claims, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var q dto.HistoryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	resp, err := h.ratingService.History(claims.UserID, query.NewPagination(q.Page, q.Limit))
	if err != nil {
		logrus.WithError(err).Error("rating history failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
