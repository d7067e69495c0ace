package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckAdminPermissionMiddleware guards the back-office routes. Anonymous
// requests are redirected to sign-in (page-level guard); a signed-in user
// without the admin role gets an inline failure.
func CheckAdminPermissionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := SessionFrom(c)
		if sess == nil {
			c.Redirect(http.StatusSeeOther, "/sign-in")
			c.Abort()
			return
		}
		if !sess.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "admin permission required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
