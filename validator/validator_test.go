package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPaymentMethods = []string{"PayPal", "Stripe", "CashOnDelivery"}

func newTestValidator() *Validator {
	return New(testPaymentMethods)
}

func fieldNames(fields Fields) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Field
	}
	return names
}

func TestSignUpValid(t *testing.T) {
	v := newTestValidator()
	fields := v.Validate(&SignUpPayload{
		Name:            "Alice",
		Email:           "a@x.com",
		Password:        "secret",
		ConfirmPassword: "secret",
	})
	assert.Nil(t, fields)
}

func TestSignUpPasswordMismatchNamesField(t *testing.T) {
	v := newTestValidator()
	fields := v.Validate(&SignUpPayload{
		Name:            "Alice",
		Email:           "a@x.com",
		Password:        "secret",
		ConfirmPassword: "secres",
	})
	require.NotNil(t, fields)
	assert.Contains(t, fieldNames(fields), "confirmPassword")
	assert.Contains(t, fields.Summary(), "passwords do not match")
}

func TestSignUpMissingFields(t *testing.T) {
	v := newTestValidator()
	fields := v.Validate(&SignUpPayload{})
	require.NotNil(t, fields)
	names := fieldNames(fields)
	assert.Contains(t, names, "name")
	assert.Contains(t, names, "email")
	assert.Contains(t, names, "password")
}

func TestPaymentMethodEnumeration(t *testing.T) {
	v := newTestValidator()

	assert.Nil(t, v.Validate(&PaymentMethodPayload{Type: "PayPal"}))

	fields := v.Validate(&PaymentMethodPayload{Type: "Barter"})
	require.NotNil(t, fields)
	assert.Equal(t, "type", fields[0].Field)
}

func TestProductCurrencyPrecision(t *testing.T) {
	v := newTestValidator()

	valid := InsertProductPayload{
		Name:        "Polo Shirt",
		Slug:        "polo-shirt",
		Category:    "Shirts",
		Brand:       "Polo",
		Description: "A classic polo shirt",
		Stock:       5,
		Images:      []string{"/images/polo.jpg"},
		Price:       "49.99",
	}
	assert.Nil(t, v.Validate(&valid))

	for _, price := range []string{"49.9", "49.999", "abc"} {
		payload := valid
		payload.Price = price
		fields := v.Validate(&payload)
		require.NotNil(t, fields, price)
		assert.Equal(t, "price", fields[0].Field)
	}
}

func TestProductRequiresImages(t *testing.T) {
	v := newTestValidator()
	payload := InsertProductPayload{
		Name:        "Polo Shirt",
		Slug:        "polo-shirt",
		Category:    "Shirts",
		Brand:       "Polo",
		Description: "A classic polo shirt",
		Price:       "49.99",
	}
	fields := v.Validate(&payload)
	require.NotNil(t, fields)
	assert.Contains(t, fieldNames(fields), "images")
}

func TestUpdateUserExtendsProfileRules(t *testing.T) {
	v := newTestValidator()

	// Inherited rule from the embedded profile schema.
	fields := v.Validate(&UpdateUserPayload{
		UpdateProfilePayload: UpdateProfilePayload{Name: "Al", Email: "a@x.com"},
		ID:                   "u1",
		Role:                 "user",
	})
	require.NotNil(t, fields)
	assert.Contains(t, fieldNames(fields), "name")

	// Added rule: role must belong to the closed set.
	fields = v.Validate(&UpdateUserPayload{
		UpdateProfilePayload: UpdateProfilePayload{Name: "Alice", Email: "a@x.com"},
		ID:                   "u1",
		Role:                 "superuser",
	})
	require.NotNil(t, fields)
	assert.Contains(t, fieldNames(fields), "role")
}

func TestCartItemSchema(t *testing.T) {
	v := newTestValidator()

	assert.Nil(t, v.Validate(&CartItemPayload{
		ProductID: "p1",
		Name:      "Polo Shirt",
		Slug:      "polo-shirt",
		Qty:       1,
		Image:     "/images/polo.jpg",
		Price:     "19.99",
	}))

	fields := v.Validate(&CartItemPayload{
		ProductID: "p1",
		Name:      "Polo Shirt",
		Slug:      "polo-shirt",
		Qty:       -1,
		Image:     "/images/polo.jpg",
		Price:     "19.99",
	})
	require.NotNil(t, fields)
	assert.Equal(t, "qty", fields[0].Field)
}

func TestReviewRatingBounds(t *testing.T) {
	v := newTestValidator()

	base := InsertReviewPayload{
		ProductID:   "p1",
		Title:       "Great shirt",
		Description: "Fits perfectly",
	}

	for _, rating := range []int{1, 3, 5} {
		payload := base
		payload.Rating = rating
		assert.Nil(t, v.Validate(&payload), rating)
	}
	for _, rating := range []int{0, 6, -2} {
		payload := base
		payload.Rating = rating
		fields := v.Validate(&payload)
		require.NotNil(t, fields, rating)
		assert.Equal(t, "rating", fields[0].Field)
	}
}
