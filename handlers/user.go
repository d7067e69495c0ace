package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/actions"
	"storefront/middleware"
	"storefront/validator"
)

func listParams(c *gin.Context) (query string, page, limit int) {
	query = c.DefaultQuery("query", "all")
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "0"))
	return query, page, limit
}

func SignUpHandler(c *gin.Context, deps *actions.Deps) {
	var payload validator.SignUpPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	respond(c, actions.SignUp(c.Request.Context(), deps, sessionCartID(c), &payload))
}

func SignInHandler(c *gin.Context, deps *actions.Deps) {
	var payload validator.SignInPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	respond(c, actions.SignIn(c.Request.Context(), deps, sessionCartID(c), &payload))
}

func SignOutHandler(c *gin.Context, deps *actions.Deps) {
	res := actions.SignOut(c.Request.Context(), deps, middleware.SessionFrom(c))
	if res.Success {
		c.Header("Authorization", "")
	}
	respond(c, res)
}

func GetProfileHandler(c *gin.Context, deps *actions.Deps) {
	respond(c, actions.GetProfile(c.Request.Context(), deps, middleware.SessionFrom(c)))
}

func UpdateProfileHandler(c *gin.Context, deps *actions.Deps) {
	var payload validator.UpdateProfilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	respond(c, actions.UpdateProfile(c.Request.Context(), deps, middleware.SessionFrom(c), &payload))
}

func UpdateAddressHandler(c *gin.Context, deps *actions.Deps) {
	var payload validator.ShippingAddressPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	respond(c, actions.UpdateAddress(c.Request.Context(), deps, middleware.SessionFrom(c), &payload))
}

func UpdatePaymentMethodHandler(c *gin.Context, deps *actions.Deps) {
	var payload validator.PaymentMethodPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	respond(c, actions.UpdatePaymentMethod(c.Request.Context(), deps, middleware.SessionFrom(c), &payload))
}

func GetUserHandler(c *gin.Context, deps *actions.Deps) {
	respond(c, actions.GetUser(c.Request.Context(), deps, middleware.SessionFrom(c), c.Param("userID")))
}

func ListUsersHandler(c *gin.Context, deps *actions.Deps) {
	query, page, limit := listParams(c)
	respond(c, actions.ListUsers(c.Request.Context(), deps, middleware.SessionFrom(c), query, page, limit))
}

func UpdateUserHandler(c *gin.Context, deps *actions.Deps) {
	var payload validator.UpdateUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	payload.ID = c.Param("userID")
	respond(c, actions.UpdateUser(c.Request.Context(), deps, middleware.SessionFrom(c), &payload))
}

func DeleteUserHandler(c *gin.Context, deps *actions.Deps) {
	respond(c, actions.DeleteUser(c.Request.Context(), deps, middleware.SessionFrom(c), c.Param("userID")))
}
