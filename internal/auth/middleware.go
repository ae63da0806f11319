package auth

import (
	"context"
	"net/http"

	dom "storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the session id.
const SessionCookieName = "session_id"

const (
	contextKeyUserID = "user_id"
	contextKeyRole   = "role"
)

// SessionReader is the part of Store the middleware needs.
type SessionReader interface {
	Get(ctx context.Context, id string) (Session, error)
}

// UserIDFromContext returns the current user ID set by RequireSession. 0 if not set.
func UserIDFromContext(c *gin.Context) int64 {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return 0
	}
	id, ok := v.(int64)
	if !ok {
		return 0
	}
	return id
}

// RoleFromContext returns the current user's role, empty if not set.
func RoleFromContext(c *gin.Context) dom.Role {
	v, _ := c.Get(contextKeyRole)
	role, _ := v.(dom.Role)
	return role
}

// SetSession stores the session identity in the gin context.
func SetSession(c *gin.Context, sess Session) {
	c.Set(contextKeyUserID, sess.UserID)
	c.Set(contextKeyRole, sess.Role)
}

// RequireSession returns a middleware that checks for a valid session cookie
// and sets the current user ID and role in context. If missing or invalid, responds with 401.
func RequireSession(sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !loadSession(c, sessions) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		c.Next()
	}
}

// OptionalSession sets the identity when a valid cookie is present and never aborts.
func OptionalSession(sessions SessionReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		loadSession(c, sessions)
		c.Next()
	}
}

// RequireAdmin must run after RequireSession; non-admins get 403.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if RoleFromContext(c) != dom.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.Next()
	}
}

func loadSession(c *gin.Context, sessions SessionReader) bool {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || sessionID == "" {
		return false
	}
	sess, err := sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		return false
	}
	SetSession(c, sess)
	return true
}
