package actions

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"storefront/auth"
	"storefront/models"
	"storefront/store"
	"storefront/validator"
)

const paymentStatusCompleted = "COMPLETED"

// PlaceOrder snapshots the user's cart into an order, decrements stock and
// clears the cart. The order event and the cart cleanup are best-effort
// after the order row exists.
func PlaceOrder(ctx context.Context, d *Deps, sess *auth.Session) Result {
	if r := requireSignedIn(sess); r != nil {
		return *r
	}

	user, err := d.Store.GetUserByID(ctx, sess.UserID)
	if err != nil {
		return fail(err, "")
	}
	if user.Address == nil {
		res := invalidMsg("address", "no shipping address on file")
		res.Redirect = "/shipping-address"
		return res
	}
	if user.PaymentMethod == "" {
		res := invalidMsg("paymentMethod", "no payment method on file")
		res.Redirect = "/payment-method"
		return res
	}

	cart, err := d.Store.GetCartByUserID(ctx, sess.UserID)
	if err != nil || len(cart.Items) == 0 {
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return fail(err, "")
		}
		res := invalidMsg("cart", "your cart is empty")
		res.Redirect = "/cart"
		return res
	}

	order := &models.Order{
		UserID:          user.ID,
		ShippingAddress: *user.Address,
		PaymentMethod:   user.PaymentMethod,
		ItemsPrice:      cart.ItemsPrice,
		ShippingPrice:   cart.ShippingPrice,
		TaxPrice:        cart.TaxPrice,
		TotalPrice:      cart.TotalPrice,
	}
	for _, item := range cart.Items {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Slug:      item.Slug,
			Qty:       item.Qty,
			Image:     item.Image,
			Price:     item.Price,
		})
	}

	if err := d.Store.CreateOrder(ctx, order); err != nil {
		return fail(err, "")
	}

	if err := d.Events.OrderPlaced(ctx, order); err != nil {
		log.Warn().Err(err).Str("orderId", order.ID).Msg("order event publish failed")
	}

	cart.Items = nil
	if err := recalcTotals(cart); err == nil {
		if err := d.Store.SaveCart(ctx, cart); err != nil {
			log.Warn().Err(err).Str("orderId", order.ID).Msg("cart cleanup failed after order")
		}
	}

	d.Pages.Invalidate(ctx, "/cart", "/user/orders")
	return okData("order placed successfully", order)
}

// GetOrder is visible to the order's owner and to admins.
func GetOrder(ctx context.Context, d *Deps, sess *auth.Session, id string) Result {
	if r := requireSignedIn(sess); r != nil {
		return *r
	}

	order, err := d.Store.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("order not found")
		}
		return fail(err, "")
	}
	if order.UserID != sess.UserID && !sess.IsAdmin() {
		return unauthorized("this order belongs to another user")
	}
	return okData("order found", order)
}

func ListMyOrders(ctx context.Context, d *Deps, sess *auth.Session, page, limit int) Result {
	if r := requireSignedIn(sess); r != nil {
		return *r
	}

	limit = d.limitOr(limit)
	orders, count, err := d.Store.ListOrdersByUser(ctx, sess.UserID, page, limit)
	if err != nil {
		return fail(err, "")
	}
	return okPage("orders listed successfully", orders, totalPages(count, limit))
}

func ListOrders(ctx context.Context, d *Deps, sess *auth.Session, page, limit int) Result {
	if r := requireAdmin(sess); r != nil {
		return *r
	}

	limit = d.limitOr(limit)
	orders, count, err := d.Store.ListOrders(ctx, page, limit)
	if err != nil {
		return fail(err, "")
	}
	return okPage("orders listed successfully", orders, totalPages(count, limit))
}

// CapturePayment asks the provider to capture the external payment and, when
// the confirmation checks out against the order total, marks the order paid.
func CapturePayment(ctx context.Context, d *Deps, sess *auth.Session, orderID, externalID string) Result {
	if r := requireSignedIn(sess); r != nil {
		return *r
	}

	order, err := d.Store.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("order not found")
		}
		return fail(err, "")
	}
	if order.UserID != sess.UserID && !sess.IsAdmin() {
		return unauthorized("this order belongs to another user")
	}
	if order.IsPaid {
		return conflict("order is already paid")
	}

	confirmation, err := d.Payments.Capture(ctx, externalID)
	if err != nil {
		log.Error().Err(err).Str("orderId", orderID).Msg("payment capture failed")
		return Result{Message: "payment capture failed, please try again", Kind: KindUnknown}
	}
	if confirmation.Status != paymentStatusCompleted {
		return invalidMsg("payment", "payment is not completed")
	}
	if confirmation.PricePaid != order.TotalPrice {
		return invalidMsg("payment", "paid amount does not match the order total")
	}

	return markPaid(ctx, d, order, confirmation)
}

// MarkPaid is the admin path for offline payment methods; the confirmation
// record is optional there.
func MarkPaid(ctx context.Context, d *Deps, sess *auth.Session, orderID string, payload *validator.PaymentResultPayload) Result {
	if r := requireAdmin(sess); r != nil {
		return *r
	}

	order, err := d.Store.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("order not found")
		}
		return fail(err, "")
	}
	if order.IsPaid {
		return conflict("order is already paid")
	}

	var confirmation *models.PaymentResult
	if payload != nil {
		if fields := d.Validate.Validate(payload); fields != nil {
			return invalid(fields)
		}
		confirmation = &models.PaymentResult{
			ID:           payload.ID,
			Status:       payload.Status,
			EmailAddress: payload.EmailAddress,
			PricePaid:    payload.PricePaid,
		}
	}

	return markPaid(ctx, d, order, confirmation)
}

func markPaid(ctx context.Context, d *Deps, order *models.Order, confirmation *models.PaymentResult) Result {
	now := time.Now()
	order.IsPaid = true
	order.PaidAt = &now
	order.PaymentResult = confirmation

	if err := d.Store.UpdateOrder(ctx, order); err != nil {
		return fail(err, "")
	}

	d.Pages.Invalidate(ctx, "/order/"+order.ID, "/admin/orders")
	return ok("order paid successfully")
}

// MarkDelivered stamps a paid order as delivered.
func MarkDelivered(ctx context.Context, d *Deps, sess *auth.Session, orderID string) Result {
	if r := requireAdmin(sess); r != nil {
		return *r
	}

	order, err := d.Store.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("order not found")
		}
		return fail(err, "")
	}
	if !order.IsPaid {
		return conflict("order is not paid")
	}
	if order.IsDelivered {
		return conflict("order is already delivered")
	}

	now := time.Now()
	order.IsDelivered = true
	order.DeliveredAt = &now
	if err := d.Store.UpdateOrder(ctx, order); err != nil {
		return fail(err, "")
	}

	d.Pages.Invalidate(ctx, "/order/"+order.ID, "/admin/orders")
	return ok("order marked as delivered")
}

func DeleteOrder(ctx context.Context, d *Deps, sess *auth.Session, id string) Result {
	if r := requireAdmin(sess); r != nil {
		return *r
	}

	if err := d.Store.DeleteOrder(ctx, id); err != nil {
		return fail(err, "")
	}

	d.Pages.Invalidate(ctx, "/admin/orders")
	return ok("order deleted successfully")
}
