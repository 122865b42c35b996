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

// StoreHandler serves the store-owner surface. Every route resolves the
// store from the caller's identity; owners cannot address other stores.
type StoreHandler struct {
	storeService service.StoreService
}

func NewStoreHandler(storeService service.StoreService) *StoreHandler {
	return &StoreHandler{storeService: storeService}
}

func (h *StoreHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.Dashboard)
	router.GET("/info", h.Info)
	router.GET("/ratings", h.Ratings)
}

// Dashboard returns the owned store with its aggregated rating and raters.
// GET /api/store/dashboard
func (h *StoreHandler) Dashboard(c *gin.Context) {
	claims, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	dashboard, err := h.storeService.Dashboard(claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
			return
		}
		logrus.WithError(err).Error("store dashboard failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"store": dashboard})
}

// Info returns the owned store's details and rating summary.
// GET /api/store/info
func (h *StoreHandler) Info(c *gin.Context) {
	claims, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	info, err := h.storeService.Info(claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
			return
		}
		logrus.WithError(err).Error("store info failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"store": info})
}

// Ratings lists who rated the owned store, sorted and paginated.
// GET /api/store/ratings
func (h *StoreHandler) Ratings(c *gin.Context) {
	claims, ok := middleware.Identity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var q dto.OwnerRatingsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	resp, err := h.storeService.Ratings(
		claims.UserID,
		query.NewSort(q.SortBy, q.SortOrder),
		query.NewPagination(q.Page, q.Limit),
	)
	if err != nil {
		if errors.Is(err, service.ErrStoreNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "store not found"})
			return
		}
		logrus.WithError(err).Error("store ratings listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
