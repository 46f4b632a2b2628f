package middleware

import (
	"net/http"
	"strings"

	"ratehub/internal/http-api/models"
	"ratehub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

// Authenticate is a Gin middleware validating the bearer token on API
// requests. The identity and role the token encodes are trusted as-is and
// placed in the request context for handlers.
func Authenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		// Expected format: "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(userContextKey, &models.User{
			ID:       claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
			IsStaff:  claims.IsStaff,
		})

		c.Next()
	}
}

// CurrentUser returns the authenticated user placed in the context by
// Authenticate, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// RequireAdmin gates a route group to staff or admin-role users. Must run
// after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			c.Abort()
			return
		}
		if !user.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "admin privilege required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
