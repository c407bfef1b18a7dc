package middlewares

import (
	"net/http"

	"cptracker/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	UserContextKey     = "userID"
	UsernameContextKey = "username"
	EmailContextKey    = "email"
)

// AuthMiddleware enforces authentication: it validates the access token from
// the cookie and sets the userID in the context.
func AuthMiddleware(tokenService *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie("access_token")
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token required"})
			c.Abort()
			return
		}

		claims, err := tokenService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(UserContextKey, claims.UserID)
		c.Set(UsernameContextKey, claims.Username)
		c.Set(EmailContextKey, claims.Email)
		c.Next()
	}
}
