package handlers

import (
	"context"
	"net/http"

	"cptracker/internal/logger"
	"cptracker/internal/middlewares"
	"cptracker/internal/models"
	"cptracker/internal/repositories"
	"cptracker/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	userRepo     repositories.UserRepository
	tokenService *services.TokenService
}

func NewProfileHandler(userRepo repositories.UserRepository, tokenService *services.TokenService) *ProfileHandler {
	return &ProfileHandler{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.GetInt(middlewares.UserContextKey)

	profile, err := h.userRepo.GetProfile(context.Background(), userID)
	if err != nil {
		logger.Log.Error("Failed to get profile",
			zap.Int("user_id", userID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile stores the submitted platform handles verbatim. An empty
// string unlinks the platform from future refreshes.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetInt(middlewares.UserContextKey)

	var req models.UpdateHandlesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.userRepo.UpdateHandles(context.Background(), userID, &req); err != nil {
		logger.Log.Error("Failed to update handles",
			zap.Int("user_id", userID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProfileHandler) RegisterRoutes(router *gin.Engine) {
	profileGroup := router.Group("/profile")
	profileGroup.Use(middlewares.AuthMiddleware(h.tokenService))
	{
		profileGroup.GET("", h.GetProfile)
		profileGroup.POST("", h.UpdateProfile)
	}
}
