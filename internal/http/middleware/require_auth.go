package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/iamlekside2/QuickGift/internal/modules/users"
)

const (
	ctxKeyUserID   = "auth_user_id"
	ctxKeyUserRole = "auth_user_role"
)

// RequireAuth validates the bearer token and stashes the caller's identity
// on the context for handlers and the logger.
func RequireAuth(tokens *users.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			unauthorized(c)
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set(ctxKeyUserID, claims.Subject)
		c.Set(ctxKeyUserRole, string(claims.Role))
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUserID(c) == "" {
			unauthorized(c)
			return
		}
		if CurrentRole(c) != string(users.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":      "forbidden",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}

func CurrentUserID(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserID); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func CurrentRole(c *gin.Context) string {
	if v, ok := c.Get(ctxKeyUserRole); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      "authentication required",
		"request_id": GetRequestID(c),
	})
}
