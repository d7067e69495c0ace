package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsCurrency(t *testing.T) {
	valid := []string{"0.00", "5", "19.99", "49.99", "100.00"}
	for _, v := range valid {
		assert.True(t, IsCurrency(v), v)
	}

	invalid := []string{"49.9", "49.999", "-1.00", "1,99", "", "abc", ".99"}
	for _, v := range invalid {
		assert.False(t, IsCurrency(v), v)
	}
}

func TestParseAndFormatCents(t *testing.T) {
	cents, err := ParseCents("19.99")
	require.NoError(t, err)
	assert.Equal(t, int64(1999), cents)

	cents, err = ParseCents("5")
	require.NoError(t, err)
	assert.Equal(t, int64(500), cents)

	_, err = ParseCents("19.9")
	assert.Error(t, err)

	assert.Equal(t, "19.99", FormatCents(1999))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "0.00", FormatCents(0))
}

func TestCalcCartTotalsReconciles(t *testing.T) {
	totals, err := CalcCartTotals([]CartItem{
		{ProductID: "p1", Price: "19.99", Qty: 2},
		{ProductID: "p2", Price: "10.00", Qty: 1},
	})
	require.NoError(t, err)

	assert.Equal(t, "49.98", totals.ItemsPrice)
	assert.Equal(t, "10.00", totals.ShippingPrice)
	assert.Equal(t, "7.50", totals.TaxPrice)
	assert.Equal(t, "67.48", totals.TotalPrice)

	items, _ := ParseCents(totals.ItemsPrice)
	shipping, _ := ParseCents(totals.ShippingPrice)
	tax, _ := ParseCents(totals.TaxPrice)
	total, _ := ParseCents(totals.TotalPrice)
	assert.Equal(t, total, items+shipping+tax)
}

func TestCalcCartTotalsFreeShipping(t *testing.T) {
	totals, err := CalcCartTotals([]CartItem{
		{ProductID: "p1", Price: "60.00", Qty: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "120.00", totals.ItemsPrice)
	assert.Equal(t, "0.00", totals.ShippingPrice)
}

func TestCalcCartTotalsEmptyCart(t *testing.T) {
	totals, err := CalcCartTotals(nil)
	require.NoError(t, err)
	assert.Equal(t, "0.00", totals.ItemsPrice)
	assert.Equal(t, "0.00", totals.ShippingPrice)
	assert.Equal(t, "0.00", totals.TaxPrice)
	assert.Equal(t, "0.00", totals.TotalPrice)
}

func TestCalcCartTotalsBadPrice(t *testing.T) {
	_, err := CalcCartTotals([]CartItem{{ProductID: "p1", Price: "19.999", Qty: 1}})
	assert.Error(t, err)
}
