package actions

import (
	"context"
	"errors"

	"storefront/auth"
	"storefront/models"
	"storefront/store"
	"storefront/validator"
)

// UpsertReview stores one review per user and product; a repeat submission
// replaces the earlier one. The product's rating and review count are
// recomputed by the gateway.
func UpsertReview(ctx context.Context, d *Deps, sess *auth.Session, payload *validator.InsertReviewPayload) Result {
	if r := requireSignedIn(sess); r != nil {
		return *r
	}
	if fields := d.Validate.Validate(payload); fields != nil {
		return invalid(fields)
	}

	product, err := d.Store.GetProductByID(ctx, payload.ProductID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("product not found")
		}
		return fail(err, "")
	}

	review, err := d.Store.GetReview(ctx, sess.UserID, product.ID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return fail(err, "")
		}
		review = &models.Review{UserID: sess.UserID, ProductID: product.ID}
	}

	review.Rating = payload.Rating
	review.Title = payload.Title
	review.Description = payload.Description
	if err := d.Store.SaveReview(ctx, review); err != nil {
		return fail(err, "")
	}

	d.Pages.Invalidate(ctx, "/product/"+product.Slug)
	return ok("review submitted successfully")
}

// ListProductReviews is keyed by slug to match the product detail page.
func ListProductReviews(ctx context.Context, d *Deps, slug string) Result {
	product, err := d.Store.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("product not found")
		}
		return fail(err, "")
	}

	reviews, err := d.Store.ListReviewsByProduct(ctx, product.ID)
	if err != nil {
		return fail(err, "")
	}
	return okData("reviews listed successfully", reviews)
}
