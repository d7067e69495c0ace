package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/actions"
)

func statusFor(res actions.Result) int {
	switch res.Kind {
	case actions.KindOK:
		return http.StatusOK
	case actions.KindValidation:
		return http.StatusBadRequest
	case actions.KindUnauthorized:
		return http.StatusUnauthorized
	case actions.KindNotFound:
		return http.StatusNotFound
	case actions.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respond writes the uniform envelope. An unauthorized result carrying a
// redirect instruction becomes an HTTP redirect so the page-level guard
// behavior survives the handler boundary; session issuance travels in the
// Authorization header as the rest of the API expects it.
func respond(c *gin.Context, res actions.Result) {
	if res.Kind == actions.KindUnauthorized && res.Redirect != "" {
		c.Redirect(http.StatusSeeOther, res.Redirect)
		return
	}
	if res.Token != "" {
		c.Header("Authorization", "Bearer "+res.Token)
	}
	c.JSON(statusFor(res), res)
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": "invalid request payload",
		"error":   err.Error(),
	})
}
