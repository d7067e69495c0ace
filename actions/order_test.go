package actions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/auth"
	"storefront/models"
	"storefront/store"
)

// checkoutUser seeds a user who has completed the shipping address and
// payment method steps.
func checkoutUser(t *testing.T, mem *store.MemStore, email string) (*models.User, *auth.Session) {
	t.Helper()

	user, sess := seedUser(t, mem, email, "secret", models.RoleUser)
	user.Address = &models.ShippingAddress{
		FullName:      "Alice Smith",
		StreetAddress: "1 Main St",
		City:          "Springfield",
		PostalCode:    "12345",
		Country:       "US",
	}
	user.PaymentMethod = "PayPal"
	require.NoError(t, mem.UpdateUser(context.Background(), user))
	return user, sess
}

func placedOrder(t *testing.T, deps *Deps, mem *store.MemStore) (*models.Order, *auth.Session) {
	t.Helper()
	ctx := context.Background()

	_, sess := checkoutUser(t, mem, "alice@example.com")
	product := seedProduct(t, mem, "polo-shirt", 5, "19.99")
	require.True(t, AddItem(ctx, deps, sess, "", itemPayload(product, 2)).Success)

	res := PlaceOrder(ctx, deps, sess)
	require.True(t, res.Success, res.Message)
	return res.Data.(*models.Order), sess
}

func TestPlaceOrder(t *testing.T) {
	deps, mem := newTestDeps()
	ctx := context.Background()

	_, sess := checkoutUser(t, mem, "alice@example.com")
	product := seedProduct(t, mem, "polo-shirt", 5, "19.99")
	require.True(t, AddItem(ctx, deps, sess, "", itemPayload(product, 2)).Success)

	res := PlaceOrder(ctx, deps, sess)
	require.True(t, res.Success, res.Message)
	order := res.Data.(*models.Order)

	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Qty)
	assert.Equal(t, "39.98", order.ItemsPrice)
	assert.Equal(t, "10.00", order.ShippingPrice)
	assert.Equal(t, "6.00", order.TaxPrice)
	assert.Equal(t, "55.98", order.TotalPrice)
	assert.False(t, order.IsPaid)

	// Stock moved with the order.
	stored, err := mem.GetProductByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Stock)

	// The cart emptied.
	cart, err := mem.GetCartByUserID(ctx, sess.UserID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestPlaceOrderChecklistRedirects(t *testing.T) {
	deps, mem := newTestDeps()
	ctx := context.Background()
	user, sess := seedUser(t, mem, "alice@example.com", "secret", models.RoleUser)

	res := PlaceOrder(ctx, deps, sess)
	assert.False(t, res.Success)
	assert.Equal(t, "/shipping-address", res.Redirect)

	user.Address = &models.ShippingAddress{
		FullName:      "Alice Smith",
		StreetAddress: "1 Main St",
		City:          "Springfield",
		PostalCode:    "12345",
		Country:       "US",
	}
	require.NoError(t, mem.UpdateUser(ctx, user))

	res = PlaceOrder(ctx, deps, sess)
	assert.False(t, res.Success)
	assert.Equal(t, "/payment-method", res.Redirect)

	user.PaymentMethod = "PayPal"
	require.NoError(t, mem.UpdateUser(ctx, user))

	res = PlaceOrder(ctx, deps, sess)
	assert.False(t, res.Success)
	assert.Equal(t, "/cart", res.Redirect)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	deps, mem := newTestDeps()
	ctx := context.Background()

	_, sess := checkoutUser(t, mem, "alice@example.com")
	product := seedProduct(t, mem, "polo-shirt", 2, "19.99")
	require.True(t, AddItem(ctx, deps, sess, "", itemPayload(product, 2)).Success)

	// Stock drains between adding to the cart and checking out.
	product.Stock = 1
	require.NoError(t, mem.UpdateProduct(ctx, product))

	res := PlaceOrder(ctx, deps, sess)
	assert.False(t, res.Success)
	assert.Equal(t, KindValidation, res.Kind)

	// The failed order left stock untouched.
	stored, err := mem.GetProductByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Stock)
}

func TestGetOrderVisibility(t *testing.T) {
	deps, mem := newTestDeps()
	ctx := context.Background()
	order, ownerSess := placedOrder(t, deps, mem)
	_, otherSess := seedUser(t, mem, "bob@example.com", "secret", models.RoleUser)
	_, adminSess := seedUser(t, mem, "admin@example.com", "secret", models.RoleAdmin)

	res := GetOrder(ctx, deps, ownerSess, order.ID)
	assert.True(t, res.Success, res.Message)

	res = GetOrder(ctx, deps, otherSess, order.ID)
	assert.False(t, res.Success)
	assert.Equal(t, KindUnauthorized, res.Kind)

	res = GetOrder(ctx, deps, adminSess, order.ID)
	assert.True(t, res.Success, res.Message)
}

func TestCapturePayment(t *testing.T) {
	deps, mem := newTestDeps()
	ctx := context.Background()
	order, sess := placedOrder(t, deps, mem)

	deps.Payments = stubProvider{confirmation: &models.PaymentResult{
		ID:           "ext-1",
		Status:       "COMPLETED",
		EmailAddress: "alice@example.com",
		PricePaid:    order.TotalPrice,
	}}

	res := CapturePayment(ctx, deps, sess, order.ID, "ext-1")
	require.True(t, res.Success, res.Message)

	stored, err := mem.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPaid)
	require.NotNil(t, stored.PaidAt)
	require.NotNil(t, stored.PaymentResult)
	assert.Equal(t, "ext-1", stored.PaymentResult.ID)

	// A second capture is a conflict, not a double payment.
	res = CapturePayment(ctx, deps, sess, order.ID, "ext-1")
	assert.False(t, res.Success)
	assert.Equal(t, KindConflict, res.Kind)
}

func TestCapturePaymentWrongAmount(t *testing.T) {
	deps, mem := newTestDeps()
	ctx := context.Background()
	order, sess := placedOrder(t, deps, mem)

	deps.Payments = stubProvider{confirmation: &models.PaymentResult{
		ID:        "ext-1",
		Status:    "COMPLETED",
		PricePaid: "1.00",
	}}

	res := CapturePayment(ctx, deps, sess, order.ID, "ext-1")
	assert.False(t, res.Success)
	assert.Equal(t, KindValidation, res.Kind)

	stored, err := mem.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsPaid)
}

func TestCapturePaymentNotCompleted(t *testing.T) {
	deps, mem := newTestDeps()
	ctx := context.Background()
	order, sess := placedOrder(t, deps, mem)

	deps.Payments = stubProvider{confirmation: &models.PaymentResult{
		ID:        "ext-1",
		Status:    "PENDING",
		PricePaid: order.TotalPrice,
	}}

	res := CapturePayment(ctx, deps, sess, order.ID, "ext-1")
	assert.False(t, res.Success)
	assert.Equal(t, KindValidation, res.Kind)
}

func TestMarkPaidAndDelivered(t *testing.T) {
	deps, mem := newTestDeps()
	ctx := context.Background()
	order, _ := placedOrder(t, deps, mem)
	_, adminSess := seedUser(t, mem, "admin@example.com", "secret", models.RoleAdmin)

	// Delivery before payment is a conflict.
	res := MarkDelivered(ctx, deps, adminSess, order.ID)
	assert.False(t, res.Success)
	assert.Equal(t, KindConflict, res.Kind)

	res = MarkPaid(ctx, deps, adminSess, order.ID, nil)
	require.True(t, res.Success, res.Message)

	res = MarkDelivered(ctx, deps, adminSess, order.ID)
	require.True(t, res.Success, res.Message)

	stored, err := mem.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsPaid)
	assert.True(t, stored.IsDelivered)
	require.NotNil(t, stored.DeliveredAt)

	// Delivery is recorded once.
	res = MarkDelivered(ctx, deps, adminSess, order.ID)
	assert.False(t, res.Success)
	assert.Equal(t, KindConflict, res.Kind)
}

func TestListMyOrdersScopedToOwner(t *testing.T) {
	deps, mem := newTestDeps()
	ctx := context.Background()
	_, ownerSess := placedOrder(t, deps, mem)
	_, otherSess := seedUser(t, mem, "bob@example.com", "secret", models.RoleUser)

	res := ListMyOrders(ctx, deps, ownerSess, 1, 0)
	require.True(t, res.Success, res.Message)
	assert.Len(t, res.Data.([]models.Order), 1)

	res = ListMyOrders(ctx, deps, otherSess, 1, 0)
	require.True(t, res.Success, res.Message)
	assert.Empty(t, res.Data)
}

func TestDeleteOrderRequiresAdmin(t *testing.T) {
	deps, mem := newTestDeps()
	ctx := context.Background()
	order, ownerSess := placedOrder(t, deps, mem)
	_, adminSess := seedUser(t, mem, "admin@example.com", "secret", models.RoleAdmin)

	res := DeleteOrder(ctx, deps, ownerSess, order.ID)
	assert.False(t, res.Success)
	assert.Equal(t, KindUnauthorized, res.Kind)

	res = DeleteOrder(ctx, deps, adminSess, order.ID)
	require.True(t, res.Success, res.Message)

	_, err := mem.GetOrderByID(ctx, order.ID)
	assert.Error(t, err)
}
