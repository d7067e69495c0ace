package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/actions"
	"storefront/middleware"
	"storefront/validator"
)

const productListCacheTTL = 5 * time.Minute

// ListProductsHandler serves the storefront catalog. The unfiltered first
// page is served from the page cache when present; product mutations
// invalidate it.
func ListProductsHandler(c *gin.Context, deps *actions.Deps) {
	query, page, limit := listParams(c)

	cacheable := (query == "" || query == "all") && page <= 1 && limit <= 0
	ctx := c.Request.Context()

	if cacheable {
		if payload, hit := deps.Pages.Get(ctx, "/"); hit {
			c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
			return
		}
	}

	res := actions.ListProducts(ctx, deps, query, page, limit)
	if cacheable && res.Success {
		if payload, err := json.Marshal(res); err == nil {
			deps.Pages.Set(ctx, "/", payload, productListCacheTTL)
		}
	}
	respond(c, res)
}

func ListFeaturedProductsHandler(c *gin.Context, deps *actions.Deps) {
	respond(c, actions.ListFeaturedProducts(c.Request.Context(), deps, 0))
}

func GetProductHandler(c *gin.Context, deps *actions.Deps) {
	respond(c, actions.GetProductBySlug(c.Request.Context(), deps, c.Param("slug")))
}

func CreateProductHandler(c *gin.Context, deps *actions.Deps) {
	var payload validator.InsertProductPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	respond(c, actions.CreateProduct(c.Request.Context(), deps, middleware.SessionFrom(c), &payload))
}

func UpdateProductHandler(c *gin.Context, deps *actions.Deps) {
	var payload validator.UpdateProductPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	payload.ID = c.Param("productID")
	respond(c, actions.UpdateProduct(c.Request.Context(), deps, middleware.SessionFrom(c), &payload))
}

func DeleteProductHandler(c *gin.Context, deps *actions.Deps) {
	respond(c, actions.DeleteProduct(c.Request.Context(), deps, middleware.SessionFrom(c), c.Param("productID")))
}
