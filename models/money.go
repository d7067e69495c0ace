package models

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Money values travel as strings with exactly two decimal places and are
// computed in integer cents.

const (
	// Orders under this items subtotal pay flat shipping; at or above it
	// shipping is free.
	freeShippingMinCents = 10000
	shippingCents        = 1000
	taxRatePercent       = 15
)

var currencyRe = regexp.MustCompile(`^\d+(\.\d{2})?$`)

// IsCurrency reports whether s is a well-formed price ("19.99", "5").
func IsCurrency(s string) bool {
	return currencyRe.MatchString(s)
}

// ParseCents converts a currency string to cents.
func ParseCents(s string) (int64, error) {
	if !IsCurrency(s) {
		return 0, fmt.Errorf("invalid currency value %q", s)
	}
	whole, frac, ok := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid currency value %q", s)
	}
	cents := n * 100
	if ok {
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid currency value %q", s)
		}
		cents += f
	}
	return cents, nil
}

// FormatCents renders cents back to the two-decimal wire format.
func FormatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

type CartTotals struct {
	ItemsPrice    string
	ShippingPrice string
	TaxPrice      string
	TotalPrice    string
}

// CalcCartTotals derives the cart price split from its items. Shipping is
// flat below the free-shipping threshold, tax is applied to the items
// subtotal rounded half-up to cents.
func CalcCartTotals(items []CartItem) (CartTotals, error) {
	var itemsCents int64
	for _, item := range items {
		c, err := ParseCents(item.Price)
		if err != nil {
			return CartTotals{}, err
		}
		itemsCents += c * int64(item.Qty)
	}

	var shipping int64
	if itemsCents > 0 && itemsCents < freeShippingMinCents {
		shipping = shippingCents
	}
	tax := (itemsCents*taxRatePercent + 50) / 100

	return CartTotals{
		ItemsPrice:    FormatCents(itemsCents),
		ShippingPrice: FormatCents(shipping),
		TaxPrice:      FormatCents(tax),
		TotalPrice:    FormatCents(itemsCents + shipping + tax),
	}, nil
}
