// Package store is the persistence gateway: typed CRUD over the storefront
// entities with datastore errors translated into sentinel values.
package store

import (
	"context"
	"errors"

	"storefront/models"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicate         = errors.New("duplicate value for a unique field")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ListQuery filters on "all" or empty match everything.
const MatchAll = "all"

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
	// ListUsers filters case-insensitively on name, newest first, and
	// returns the matching row count alongside the page.
	ListUsers(ctx context.Context, query string, page, limit int) ([]models.User, int64, error)
}

type ProductStore interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id string) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
	ListProducts(ctx context.Context, query string, page, limit int) ([]models.Product, int64, error)
	ListFeaturedProducts(ctx context.Context, limit int) ([]models.Product, error)
}

type CartStore interface {
	GetCartBySessionID(ctx context.Context, sessionCartID string) (*models.Cart, error)
	GetCartByUserID(ctx context.Context, userID string) (*models.Cart, error)
	// SaveCart upserts the cart and replaces its items wholesale.
	SaveCart(ctx context.Context, cart *models.Cart) error
	DeleteCart(ctx context.Context, id string) error
}

type OrderStore interface {
	// CreateOrder checks and decrements product stock and inserts the order
	// with its items in a single transaction.
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	UpdateOrder(ctx context.Context, order *models.Order) error
	DeleteOrder(ctx context.Context, id string) error
	ListOrdersByUser(ctx context.Context, userID string, page, limit int) ([]models.Order, int64, error)
	ListOrders(ctx context.Context, page, limit int) ([]models.Order, int64, error)
}

type ReviewStore interface {
	GetReview(ctx context.Context, userID, productID string) (*models.Review, error)
	// SaveReview upserts the review and recomputes the product's rating and
	// review count.
	SaveReview(ctx context.Context, review *models.Review) error
	ListReviewsByProduct(ctx context.Context, productID string) ([]models.Review, error)
}

type TokenStore interface {
	CreateLoginToken(ctx context.Context, token *models.LoginToken) error
	GetLoginToken(ctx context.Context, token string) (*models.LoginToken, error)
	DeleteLoginToken(ctx context.Context, token string) error
}

// Gateway is the full persistence surface the action handlers depend on.
type Gateway interface {
	UserStore
	ProductStore
	CartStore
	OrderStore
	ReviewStore
	TokenStore
}

// NormalizePage treats page numbers below 1 as page 1.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func offsetFor(page, limit int) int {
	return (NormalizePage(page) - 1) * limit
}

func filtersAll(query string) bool {
	return query == "" || query == MatchAll
}
