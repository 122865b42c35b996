package handler

import (
	"errors"
	"net/http"

	"storehub/internal/httpapi/dto"
	"storehub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// RegisterRoutes registers the admin surface. The group is already gated on
// the ADMIN role.
func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.Dashboard)
	router.POST("/users", h.CreateUser)
	router.GET("/users", h.ListUsers)
	router.GET("/users/:id", h.GetUser)
	router.POST("/stores", h.CreateStore)
	router.GET("/stores", h.ListStores)
}

// Dashboard returns platform-wide counts.
// GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	counts, err := h.adminService.Dashboard(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("dashboard counts failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"dashboard": counts})
}

// CreateUser creates an account with an admin-chosen role.
// POST /api/admin/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req dto.AdminCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	user, err := h.adminService.CreateUser(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrEmailInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "user with this email already exists"})
		default:
			logrus.WithError(err).Error("admin user creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"user":    dto.FromUserModel(user),
	})
}

// ListUsers lists users with filters, sorting and pagination.
// GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var q dto.ListUsersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	resp, err := h.adminService.ListUsers(q)
	if err != nil {
		logrus.WithError(err).Error("user listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetUser returns one user with their owned-store rating summary.
// GET /api/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	user, err := h.adminService.GetUser(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrAdminUserMissing) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		logrus.WithError(err).Error("user lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// CreateStore creates a store and promotes its owner atomically.
// POST /api/admin/stores
func (h *AdminHandler) CreateStore(c *gin.Context) {
	var req dto.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	store, err := h.adminService.CreateStore(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStoreEmailInUse):
			c.JSON(http.StatusConflict, gin.H{"error": "store with this email already exists"})
		case errors.Is(err, service.ErrOwnerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "owner not found"})
		case errors.Is(err, service.ErrOwnerHasStore):
			c.JSON(http.StatusConflict, gin.H{"error": "user is already a store owner"})
		default:
			logrus.WithError(err).Error("store creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.CreateStoreResponse{
		Message: "Store created successfully",
		Store:   *store,
	})
}

// ListStores lists stores with filters and rating-aware sorting.
// GET /api/admin/stores
func (h *AdminHandler) ListStores(c *gin.Context) {
	var q dto.ListStoresQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	resp, err := h.adminService.ListStores(q)
	if err != nil {
		logrus.WithError(err).Error("store listing failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
