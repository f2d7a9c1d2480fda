package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skillur/internal/domain"
	"skillur/internal/repository"
	"skillur/internal/usecase"
)

const (
	CtxUserID  = "userId"
	CtxProfile = "profile"
)

func AuthMiddleware(auth *usecase.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			return
		}

		userID, err := auth.ValidateAccess(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(CtxUserID, userID)
		c.Next()
	}
}

// RequireCapability loads the caller's profile and gates the route on a single
// authorization decision instead of ad hoc is_admin checks in handlers.
func RequireCapability(profiles *repository.ProfileRepository, cap domain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := UserID(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		profile, err := profiles.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Failed to verify user profile"})
			return
		}
		if !profile.Can(cap) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: admins only"})
			return
		}

		c.Set(CtxProfile, profile)
		c.Next()
	}
}

// UserID returns the authenticated caller's id set by AuthMiddleware.
func UserID(c *gin.Context) (uuid.UUID, error) {
	return uuid.Parse(c.GetString(CtxUserID))
}
