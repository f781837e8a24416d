package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const contextKeyUserID = "user_id"

// UserIDFromContext returns the current user ID set by RequireAuth.
// Empty if not set.
func UserIDFromContext(c *gin.Context) string {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return ""
	}
	id, ok := v.(string)
	if !ok {
		return ""
	}
	return id
}

// RequireAuth returns a middleware that verifies the bearer token and
// sets the current user ID in context. Missing, malformed, expired or
// revoked tokens get a 401. revoked may be nil, disabling the denylist
// check (used by tests).
func RequireAuth(secret string, revoked *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		claims, err := ParseToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if revoked != nil {
			dead, err := revoked.IsRevoked(c.Request.Context(), claims.ID)
			if err != nil || dead {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
				return
			}
		}
		c.Set(contextKeyUserID, claims.UserID)
		c.Next()
	}
}
