package mw

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// usernameKey is the context key the auth middleware stores the
// session's username under.
const usernameKey = "auth.username"

// SessionResolver resolves a session token to a username.
type SessionResolver interface {
	Username(token string) (string, bool)
}

// RequireUser rejects requests without a valid "Bearer <token>"
// Authorization header and stashes the session's username in the
// request context for handlers to pass into store operations.
func RequireUser(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		username, ok := sessions.Username(token)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired or invalid"})
			return
		}
		c.Set(usernameKey, username)
		c.Next()
	}
}

// SessionUser returns the username set by RequireUser.
func SessionUser(c *gin.Context) string {
	return c.GetString(usernameKey)
}
