package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/healthassist-server/internal/auth"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ContextUserID = "user_id"
	ContextEmail  = "user_email"
)

// OptionalAuth records the caller's identity when a valid bearer token is
// present but lets anonymous requests through.
func OptionalAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if raw, ok := strings.CutPrefix(header, "Bearer "); ok {
			if claims, err := tokens.Verify(raw); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextEmail, claims.Email)
			}
		}
		c.Next()
	}
}

// RequireAuth validates the bearer token and stores the caller's identity
// in the request context.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header must use the Bearer scheme",
			})
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}
