package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"couponmart/internal/apperr"
	"couponmart/internal/session"
)

const sessionKey = "session"

// Auth resolves the opaque bearer token against the session registry and
// attaches the live session to the request context.
func Auth(registry *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":  apperr.CodeInvalidToken,
				"error": "missing bearer token",
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")

		s, err := registry.Resolve(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":  apperr.CodeInvalidToken,
				"error": "invalid token",
			})
			return
		}

		c.Set(sessionKey, s)
		c.Next()
	}
}

// SessionFrom returns the session attached by Auth.
func SessionFrom(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	s, ok := v.(*session.Session)
	return s, ok
}
