package actions

import (
	"context"
	"errors"

	"storefront/auth"
	"storefront/models"
	"storefront/store"
	"storefront/validator"
)

func GetProductBySlug(ctx context.Context, d *Deps, slug string) Result {
	product, err := d.Store.GetProductBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("product not found")
		}
		return fail(err, "")
	}
	return okData("product found", product)
}

// ListProducts serves the storefront and the admin catalog table.
func ListProducts(ctx context.Context, d *Deps, query string, page, limit int) Result {
	limit = d.limitOr(limit)
	products, count, err := d.Store.ListProducts(ctx, query, page, limit)
	if err != nil {
		return fail(err, "")
	}
	return okPage("products listed successfully", products, totalPages(count, limit))
}

func ListFeaturedProducts(ctx context.Context, d *Deps, limit int) Result {
	products, err := d.Store.ListFeaturedProducts(ctx, d.limitOr(limit))
	if err != nil {
		return fail(err, "")
	}
	return okData("featured products listed successfully", products)
}

// CreateProduct is admin-only. Validation runs before any write, so a price
// like "49.999" never reaches the gateway.
func CreateProduct(ctx context.Context, d *Deps, sess *auth.Session, payload *validator.InsertProductPayload) Result {
	if r := requireAdmin(sess); r != nil {
		return *r
	}
	if fields := d.Validate.Validate(payload); fields != nil {
		return invalid(fields)
	}

	product := &models.Product{
		Name:        payload.Name,
		Slug:        payload.Slug,
		Category:    payload.Category,
		Brand:       payload.Brand,
		Description: payload.Description,
		Price:       payload.Price,
		Stock:       payload.Stock,
		Images:      payload.Images,
		IsFeatured:  payload.IsFeatured,
		Banner:      payload.Banner,
	}
	if err := d.Store.CreateProduct(ctx, product); err != nil {
		return fail(err, "slug is already in use")
	}

	d.Pages.Invalidate(ctx, "/admin/products", "/")
	return okData("product created successfully", product)
}

func UpdateProduct(ctx context.Context, d *Deps, sess *auth.Session, payload *validator.UpdateProductPayload) Result {
	if r := requireAdmin(sess); r != nil {
		return *r
	}
	if fields := d.Validate.Validate(payload); fields != nil {
		return invalid(fields)
	}

	product, err := d.Store.GetProductByID(ctx, payload.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound("product not found")
		}
		return fail(err, "")
	}

	product.Name = payload.Name
	product.Slug = payload.Slug
	product.Category = payload.Category
	product.Brand = payload.Brand
	product.Description = payload.Description
	product.Price = payload.Price
	product.Stock = payload.Stock
	product.Images = payload.Images
	product.IsFeatured = payload.IsFeatured
	product.Banner = payload.Banner

	if err := d.Store.UpdateProduct(ctx, product); err != nil {
		return fail(err, "slug is already in use")
	}

	d.Pages.Invalidate(ctx, "/admin/products", "/", "/product/"+product.Slug)
	return ok("product updated successfully")
}

func DeleteProduct(ctx context.Context, d *Deps, sess *auth.Session, id string) Result {
	if r := requireAdmin(sess); r != nil {
		return *r
	}

	if err := d.Store.DeleteProduct(ctx, id); err != nil {
		return fail(err, "")
	}

	d.Pages.Invalidate(ctx, "/admin/products", "/")
	return ok("product deleted successfully")
}
