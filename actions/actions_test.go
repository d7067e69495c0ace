package actions

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storefront/auth"
	"storefront/cache"
	"storefront/events"
	"storefront/models"
	"storefront/store"
	"storefront/validator"
)

// stubProvider stands in for the payment provider in order tests.
type stubProvider struct {
	confirmation *models.PaymentResult
	err          error
}

func (s stubProvider) Capture(context.Context, string) (*models.PaymentResult, error) {
	return s.confirmation, s.err
}

func newTestDeps() (*Deps, *store.MemStore) {
	mem := store.NewMem()
	return &Deps{
		Store:    mem,
		Sessions: auth.NewManager(mem, "test-secret", time.Hour),
		Validate: validator.New([]string{"PayPal", "Stripe", "CashOnDelivery"}),
		Pages:    cache.Nop{},
		Events:   events.Nop{},
		Payments: stubProvider{},
		PageSize: 12,
	}, mem
}

func seedUser(t *testing.T, mem *store.MemStore, email, password, role string) (*models.User, *auth.Session) {
	t.Helper()

	digest, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Name:     "Test User",
		Email:    email,
		Password: digest,
		Role:     role,
	}
	require.NoError(t, mem.CreateUser(context.Background(), user))

	return user, &auth.Session{UserID: user.ID, Role: user.Role}
}

func seedProduct(t *testing.T, mem *store.MemStore, slug string, stock int, price string) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:        "Product " + slug,
		Slug:        slug,
		Category:    "Shirts",
		Brand:       "Acme",
		Description: "A test product",
		Price:       price,
		Stock:       stock,
		Images:      []string{"/images/" + slug + ".jpg"},
	}
	require.NoError(t, mem.CreateProduct(context.Background(), product))
	return product
}

func seedProducts(t *testing.T, mem *store.MemStore, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		seedProduct(t, mem, fmt.Sprintf("product-%02d", i), 10, "10.00")
	}
}
