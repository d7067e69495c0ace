package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront/actions"
	"storefront/middleware"
	"storefront/validator"
)

const sessionCartCookie = "session_cart_id"

// sessionCartID reads the session cart cookie without minting one; browsing
// never creates a cart.
func sessionCartID(c *gin.Context) string {
	cookie, err := c.Request.Cookie(sessionCartCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// ensureSessionCartID mints the cookie on first cart mutation.
func ensureSessionCartID(c *gin.Context) string {
	if id := sessionCartID(c); id != "" {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sessionCartCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return id
}

func GetCartHandler(c *gin.Context, deps *actions.Deps) {
	respond(c, actions.GetCart(c.Request.Context(), deps, middleware.SessionFrom(c), sessionCartID(c)))
}

func AddToCartHandler(c *gin.Context, deps *actions.Deps) {
	var payload validator.CartItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	respond(c, actions.AddItem(c.Request.Context(), deps, middleware.SessionFrom(c), ensureSessionCartID(c), &payload))
}

func RemoveFromCartHandler(c *gin.Context, deps *actions.Deps) {
	respond(c, actions.RemoveItem(c.Request.Context(), deps, middleware.SessionFrom(c), sessionCartID(c), c.Param("productID")))
}
