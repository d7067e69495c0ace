package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CheckLoginMiddleware aborts anonymous requests to the signed-in routes.
func CheckLoginMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if SessionFrom(c) == nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "authentication required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
