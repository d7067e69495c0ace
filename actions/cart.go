package actions

import (
	"context"
	"errors"
	"fmt"

	"storefront/auth"
	"storefront/models"
	"storefront/store"
	"storefront/validator"
)

// currentCart resolves the cart for the request: the user's cart when signed
// in, else the session cart from the cookie.
func currentCart(ctx context.Context, d *Deps, sess *auth.Session, sessionCartID string) (*models.Cart, error) {
	if sess != nil {
		cart, err := d.Store.GetCartByUserID(ctx, sess.UserID)
		if err == nil || !errors.Is(err, store.ErrNotFound) {
			return cart, err
		}
	}
	if sessionCartID == "" {
		return nil, store.ErrNotFound
	}
	return d.Store.GetCartBySessionID(ctx, sessionCartID)
}

func recalcTotals(cart *models.Cart) error {
	totals, err := models.CalcCartTotals(cart.Items)
	if err != nil {
		return err
	}
	cart.ItemsPrice = totals.ItemsPrice
	cart.ShippingPrice = totals.ShippingPrice
	cart.TaxPrice = totals.TaxPrice
	cart.TotalPrice = totals.TotalPrice
	return nil
}

// GetCart returns the current cart; an absent cart is an empty cart, not a
// failure.
func GetCart(ctx context.Context, d *Deps, sess *auth.Session, sessionCartID string) Result {
	cart, err := currentCart(ctx, d, sess, sessionCartID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return okData("cart is empty", nil)
		}
		return fail(err, "")
	}
	return okData("cart found", cart)
}

// AddItem puts a product line into the cart. Adding a product that is
// already in the cart increments the existing line instead of duplicating
// it; derived totals are recomputed on every change.
func AddItem(ctx context.Context, d *Deps, sess *auth.Session, sessionCartID string, payload *validator.CartItemPayload) Result {
	if fields := d.Validate.Validate(payload); fields != nil {
		return invalid(fields)
	}
	if sess == nil && sessionCartID == "" {
		return invalidMsg("sessionCartId", "session cart id is required")
	}

	product, err := d.Store.GetProductByID(ctx, payload.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("product not found")
		}
		return fail(err, "")
	}

	cart, err := currentCart(ctx, d, sess, sessionCartID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return fail(err, "")
		}
		cart = &models.Cart{SessionCartID: sessionCartID}
		if sess != nil {
			userID := sess.UserID
			cart.UserID = &userID
		}
	}

	qty := payload.Qty
	if qty == 0 {
		qty = 1
	}

	if line := cart.FindItem(product.ID); line != nil {
		if line.Qty+qty > product.Stock {
			return invalidMsg("qty", "not enough stock")
		}
		line.Qty += qty
	} else {
		if qty > product.Stock {
			return invalidMsg("qty", "not enough stock")
		}
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Slug:      product.Slug,
			Qty:       qty,
			Image:     payload.Image,
			Price:     product.Price,
		})
	}

	if err := recalcTotals(cart); err != nil {
		return fail(err, "")
	}
	if err := d.Store.SaveCart(ctx, cart); err != nil {
		return fail(err, "")
	}

	d.Pages.Invalidate(ctx, "/cart")
	return okData(fmt.Sprintf("%s added to cart", product.Name), cart)
}

// RemoveItem decrements the product's line; at zero the line disappears.
func RemoveItem(ctx context.Context, d *Deps, sess *auth.Session, sessionCartID, productID string) Result {
	cart, err := currentCart(ctx, d, sess, sessionCartID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("cart not found")
		}
		return fail(err, "")
	}

	line := cart.FindItem(productID)
	if line == nil {
		return notFound("item not found in cart")
	}

	name := line.Name
	if line.Qty > 1 {
		line.Qty--
	} else {
		kept := cart.Items[:0]
		for _, item := range cart.Items {
			if item.ProductID != productID {
				kept = append(kept, item)
			}
		}
		cart.Items = kept
	}

	if err := recalcTotals(cart); err != nil {
		return fail(err, "")
	}
	if err := d.Store.SaveCart(ctx, cart); err != nil {
		return fail(err, "")
	}

	d.Pages.Invalidate(ctx, "/cart")
	return okData(fmt.Sprintf("%s removed from cart", name), cart)
}

// adoptSessionCart merges an anonymous session cart into the user's cart.
// With no user cart the session cart simply changes owner; otherwise the
// lines are folded together and the session cart deleted.
func adoptSessionCart(ctx context.Context, d *Deps, sess *auth.Session, sessionCartID string) error {
	sessCart, err := d.Store.GetCartBySessionID(ctx, sessionCartID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	if sessCart.UserID != nil && *sessCart.UserID == sess.UserID {
		return nil
	}

	userCart, err := d.Store.GetCartByUserID(ctx, sess.UserID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		userID := sess.UserID
		sessCart.UserID = &userID
		return d.Store.SaveCart(ctx, sessCart)
	}

	for _, item := range sessCart.Items {
		if line := userCart.FindItem(item.ProductID); line != nil {
			line.Qty += item.Qty
		} else {
			userCart.Items = append(userCart.Items, item)
		}
	}
	if err := recalcTotals(userCart); err != nil {
		return err
	}
	if err := d.Store.SaveCart(ctx, userCart); err != nil {
		return err
	}
	return d.Store.DeleteCart(ctx, sessCart.ID)
}
