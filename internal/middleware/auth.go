// Package middleware provides HTTP middleware for authentication and logging.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"commandcenter/internal/services"
)

// SessionContextKey is the key for storing the validated session in the
// request context.
const SessionContextKey = "session"

// AuthRequired rejects requests without a valid bearer token. Missing and
// malformed headers, unknown tokens, and expired sessions all produce the
// same 401 response.
func AuthRequired(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			unauthorized(c)
			return
		}

		session, ok := authService.ValidateToken(token)
		if !ok {
			unauthorized(c)
			return
		}

		c.Set(SessionContextKey, session)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	c.Abort()
}
