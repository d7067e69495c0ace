package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/auth"
)

const sessionKey = "session"

// AuthMiddleware resolves the bearer token into a session. An absent or
// invalid token just leaves the request anonymous; the gates decide what
// that means per route group.
func AuthMiddleware(sessions *auth.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			c.Next()
			return
		}

		sess, err := sessions.Verify(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// SessionFrom returns the request's session, or nil when anonymous.
func SessionFrom(c *gin.Context) *auth.Session {
	value, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := value.(*auth.Session)
	return sess
}
