package middleware

import (
	"net/http"
	"strings"

	userRepo "homeserve/database/repository/user"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
)

// resolveUser validates the bearer token against the stored token hash and
// returns the user ID, or "" when the request carries no valid session.
func resolveUser(c *gin.Context, repo userRepo.UserRepository) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == "" {
		return ""
	}

	userID, err := utils.ExtractIDFromToken(tokenString)
	if err != nil || userID == "" {
		return ""
	}

	user, err := repo.GetByID(userID)
	if err != nil || user == nil {
		return ""
	}
	// A token revoked server-side no longer matches the stored hash.
	if user.TokenHash != utils.HashToken(tokenString) {
		return ""
	}
	return userID
}

// JWTAuthMiddleware requires a valid bearer token and sets "userID" in the
// request context.
func JWTAuthMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := resolveUser(c, repo)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		c.Set("userID", userID)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the bearer token when present but never
// rejects the request. Handlers use the resolved "userID" as the
// authoritative customer identity when available.
func OptionalAuthMiddleware(repo userRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := resolveUser(c, repo); userID != "" {
			c.Set("userID", userID)
		}
		c.Next()
	}
}
