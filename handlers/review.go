package handlers

import (
	"github.com/gin-gonic/gin"

	"storefront/actions"
	"storefront/middleware"
	"storefront/validator"
)

func UpsertReviewHandler(c *gin.Context, deps *actions.Deps) {
	var payload validator.InsertReviewPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	respond(c, actions.UpsertReview(c.Request.Context(), deps, middleware.SessionFrom(c), &payload))
}

func ListProductReviewsHandler(c *gin.Context, deps *actions.Deps) {
	respond(c, actions.ListProductReviews(c.Request.Context(), deps, c.Param("slug")))
}
