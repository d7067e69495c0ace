package handlers

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"storefront/actions"
	"storefront/middleware"
	"storefront/validator"
)

func PlaceOrderHandler(c *gin.Context, deps *actions.Deps) {
	respond(c, actions.PlaceOrder(c.Request.Context(), deps, middleware.SessionFrom(c)))
}

func GetOrderHandler(c *gin.Context, deps *actions.Deps) {
	respond(c, actions.GetOrder(c.Request.Context(), deps, middleware.SessionFrom(c), c.Param("orderID")))
}

func ListMyOrdersHandler(c *gin.Context, deps *actions.Deps) {
	_, page, limit := listParams(c)
	respond(c, actions.ListMyOrders(c.Request.Context(), deps, middleware.SessionFrom(c), page, limit))
}

func CapturePaymentHandler(c *gin.Context, deps *actions.Deps) {
	var payload struct {
		ID string `json:"id"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	respond(c, actions.CapturePayment(c.Request.Context(), deps, middleware.SessionFrom(c), c.Param("orderID"), payload.ID))
}

func ListOrdersHandler(c *gin.Context, deps *actions.Deps) {
	_, page, limit := listParams(c)
	respond(c, actions.ListOrders(c.Request.Context(), deps, middleware.SessionFrom(c), page, limit))
}

// MarkOrderPaidHandler accepts an optional confirmation record; offline
// payment methods send none.
func MarkOrderPaidHandler(c *gin.Context, deps *actions.Deps) {
	var payload *validator.PaymentResultPayload
	var body validator.PaymentResultPayload
	err := c.ShouldBindJSON(&body)
	switch {
	case err == nil:
		payload = &body
	case errors.Is(err, io.EOF):
		payload = nil
	default:
		respondBindError(c, err)
		return
	}
	respond(c, actions.MarkPaid(c.Request.Context(), deps, middleware.SessionFrom(c), c.Param("orderID"), payload))
}

func MarkOrderDeliveredHandler(c *gin.Context, deps *actions.Deps) {
	respond(c, actions.MarkDelivered(c.Request.Context(), deps, middleware.SessionFrom(c), c.Param("orderID")))
}

func DeleteOrderHandler(c *gin.Context, deps *actions.Deps) {
	respond(c, actions.DeleteOrder(c.Request.Context(), deps, middleware.SessionFrom(c), c.Param("orderID")))
}
