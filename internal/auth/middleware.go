package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/eliman/taskdesk/internal/model"
	"github.com/eliman/taskdesk/internal/perm"
)

// identityKey is the gin context key the middleware stores the caller
// identity under.
const identityKey = "identity"

// Middleware authenticates the bearer token and stores the caller
// identity in the request context.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization format"})
			c.Abort()
			return
		}

		identity, err := m.ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// Identity extracts the authenticated caller from the gin context. The
// bool is false if the auth middleware did not run.
func Identity(c *gin.Context) (model.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return model.Identity{}, false
	}
	id, ok := v.(model.Identity)
	return id, ok
}

// RequireCapability gates a route on a coarse role capability from the
// perm table.
func RequireCapability(allowed func(perm.Capabilities) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := Identity(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "identity not established"})
			c.Abort()
			return
		}

		if !allowed(perm.For(identity.Role)) {
			c.JSON(http.StatusForbidden, gin.H{"error": "you do not have permission to access this resource"})
			c.Abort()
			return
		}

		c.Next()
	}
}
