package mw

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"active-rooms-backend/internal/model"
	"active-rooms-backend/internal/store"
)

const userContextKey = "auth.user"

// Authenticate resolves the credential headers to a user, rejecting the
// request with 401 when they are missing or wrong. It runs before any
// validation on mutating endpoints.
func Authenticate(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetHeader("username")
		password := c.GetHeader("password")
		if username == "" || password == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "Authentication required",
			})
			return
		}

		user, err := s.Authenticate(c.Request.Context(), username, password)
		if errors.Is(err, store.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "Invalid credentials",
			})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false, "message": "Authentication error",
			})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAdmin rejects requests whose authenticated user lacks the admin
// role. Must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || user.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false, "message": "Admin access required",
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Authenticate, or nil.
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*model.User); ok {
			return user
		}
	}
	return nil
}
