package handlers

import (
	"context"
	"net/http"
	"time"

	"cptracker/internal/logger"
	"cptracker/internal/middlewares"
	"cptracker/internal/repositories"
	"cptracker/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// APIHandler serves the dashboard endpoints: data refresh, aggregated stats
// and the recent submissions list.
type APIHandler struct {
	userRepo       repositories.UserRepository
	refreshService *services.RefreshService
	statsService   *services.StatsService
	tokenService   *services.TokenService
}

func NewAPIHandler(
	userRepo repositories.UserRepository,
	refreshService *services.RefreshService,
	statsService *services.StatsService,
	tokenService *services.TokenService,
) *APIHandler {
	return &APIHandler{
		userRepo:       userRepo,
		refreshService: refreshService,
		statsService:   statsService,
		tokenService:   tokenService,
	}
}

// RefreshData re-fetches all linked platforms for the signed-in user.
// Per-platform failures are logged server-side and only drop the platform
// from platforms_refreshed; the request itself still succeeds.
func (h *APIHandler) RefreshData(c *gin.Context) {
	userID := c.GetInt(middlewares.UserContextKey)

	user, err := h.userRepo.GetUserByID(context.Background(), userID)
	if err != nil {
		logger.Log.Error("Failed to load user for refresh",
			zap.Int("user_id", userID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load user"})
		return
	}

	platformsRefreshed, refreshedAt, err := h.refreshService.Refresh(context.Background(), user)
	if err != nil {
		logger.Log.Error("Failed to refresh data",
			zap.Int("user_id", userID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to refresh data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":             true,
		"platforms_refreshed": platformsRefreshed,
		"last_refresh":        refreshedAt.Format(time.RFC3339),
	})
}

func (h *APIHandler) UserStats(c *gin.Context) {
	userID := c.GetInt(middlewares.UserContextKey)

	user, err := h.userRepo.GetUserByID(context.Background(), userID)
	if err != nil {
		logger.Log.Error("Failed to load user for stats",
			zap.Int("user_id", userID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load user"})
		return
	}

	stats, err := h.statsService.UserStats(context.Background(), user)
	if err != nil {
		logger.Log.Error("Failed to compute user stats",
			zap.Int("user_id", userID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *APIHandler) RecentSubmissions(c *gin.Context) {
	userID := c.GetInt(middlewares.UserContextKey)

	recent, err := h.statsService.RecentSubmissions(context.Background(), userID)
	if err != nil {
		logger.Log.Error("Failed to get recent submissions",
			zap.Int("user_id", userID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to retrieve submissions"})
		return
	}

	c.JSON(http.StatusOK, recent)
}

func (h *APIHandler) RegisterRoutes(router *gin.Engine) {
	apiGroup := router.Group("/api")
	apiGroup.Use(middlewares.AuthMiddleware(h.tokenService))
	{
		apiGroup.GET("/refresh_data", h.RefreshData)
		apiGroup.GET("/user_stats", h.UserStats)
		apiGroup.GET("/recent_submissions", h.RecentSubmissions)
	}
}
