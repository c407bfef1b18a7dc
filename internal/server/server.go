package server

import (
	"context"
	"log"
	"net/http"

	"cptracker/configs"
	"cptracker/internal/dbs"
	"cptracker/internal/handlers"
	"cptracker/internal/logger"
	"cptracker/internal/middlewares"
	"cptracker/internal/platforms"
	"cptracker/internal/repositories"
	"cptracker/internal/services"

	"github.com/gin-gonic/gin"
)

func StartGinServer() {
	logger.InitLogger()
	defer logger.SyncLogger()

	config := configs.LoadConfig()

	db, err := dbs.Init(config)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := dbs.InitRedis(ctx, config.RedisAddr); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}
	defer dbs.CloseRedis()

	cache := services.NewRedisCache(dbs.RedisClient)
	tokenService := services.NewTokenService(config.JWTSecret)

	userRepo := repositories.NewUserRepository(db, cache)
	subRepo := repositories.NewSubmissionRepository(db)
	ratingRepo := repositories.NewRatingRepository(db)

	fetchCache := platforms.NewFetchCache(config.FetchCacheTTL)
	refreshService := services.NewRefreshService(userRepo, subRepo, ratingRepo, fetchCache, platforms.DefaultFetchers())
	statsService := services.NewStatsService(subRepo, ratingRepo)

	router := gin.New()
	router.Use(middlewares.ErrorHandlerMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	handlers.NewAuthHandler(userRepo, tokenService).RegisterRoutes(router)
	handlers.NewProfileHandler(userRepo, tokenService).RegisterRoutes(router)
	handlers.NewAPIHandler(userRepo, refreshService, statsService, tokenService).RegisterRoutes(router)

	port := ":" + config.ServerPort
	log.Printf("Starting server on port %s", port)
	if err := router.Run(port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
