package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/edukit/rollbook/internal/server/models"
)

// identityKey is the gin context key under which the resolved identity is
// stored for downstream handlers.
const identityKey = "auth.identity"

// requireAuth validates the Authorization bearer token and injects the
// resolved identity into the request context. Any failure aborts the
// request with 401 before business logic runs; the message stays generic
// so callers cannot probe which check failed.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthorized(c)
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c)
			return
		}

		user, err := s.users.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(identityKey, user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "invalid or expired token",
	})
}

// IdentityFromContext returns the authenticated user injected by
// requireAuth, or nil when the route is not protected.
func IdentityFromContext(c *gin.Context) *models.User {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}
