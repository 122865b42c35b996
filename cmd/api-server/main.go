package main

import (
	"context"
	"fmt"

	"storehub/internal/config"
	"storehub/internal/database"
	"storehub/internal/httpapi/handler"
	"storehub/internal/httpapi/middleware"
	"storehub/internal/httpapi/models"
	"storehub/internal/httpapi/repository"
	"storehub/internal/httpapi/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("could not load config: %v", err)
	}

	setupLogger(cfg)

	db, err := database.Connect(cfg, logrus.StandardLogger())
	if err != nil {
		logrus.Fatalf("could not connect to database: %v", err)
	}

	// Redis is optional infrastructure: the dashboard cache degrades to
	// direct counts when it is unreachable.
	rdb := connectRedis(cfg)

	if cfg.GoEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg)
	adminService := service.NewAdminService(userRepo, storeRepo, ratingRepo, rdb, cfg.CacheTTL)
	storeService := service.NewStoreService(storeRepo, ratingRepo)
	ratingService := service.NewRatingService(ratingRepo, storeRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService)
	storeHandler := handler.NewStoreHandler(storeService)
	userHandler := handler.NewUserHandler(storeService, ratingService)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	api := r.Group("/api")

	authPublic := api.Group("/auth")
	authPublic.Use(middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateBurst))
	authPrivate := api.Group("/auth")
	authPrivate.Use(middleware.AuthMiddleware(authService))
	authHandler.RegisterRoutes(authPublic, authPrivate)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(authService), middleware.RequireRole(models.RoleAdmin))
	adminHandler.RegisterRoutes(admin)

	store := api.Group("/store")
	store.Use(middleware.AuthMiddleware(authService), middleware.RequireRole(models.RoleStoreOwner))
	storeHandler.RegisterRoutes(store)

	user := api.Group("/user")
	user.Use(middleware.AuthMiddleware(authService), middleware.RequireRole(models.RoleUser))
	userHandler.RegisterRoutes(user)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logrus.Infof("Server running on %s", addr)
	if err := r.Run(addr); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}

func setupLogger(cfg *config.Config) {
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}
}

func connectRedis(cfg *config.Config) *redis.Client {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.Warnf("invalid REDIS_URL, running without cache: %v", err)
		return nil
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logrus.Warnf("redis unreachable, running without cache: %v", err)
		return nil
	}
	return rdb
}
