package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"storefront/models"
)

// MemStore is a map-backed Gateway with the same contract as the gorm
// implementation. It backs the action tests and local development without a
// database.
type MemStore struct {
	mu sync.RWMutex

	users    []models.User
	products []models.Product
	carts    []models.Cart
	orders   []models.Order
	reviews  []models.Review
	tokens   []models.LoginToken
}

func NewMem() *MemStore {
	return &MemStore{}
}

func matches(query, name string) bool {
	if filtersAll(query) {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

// paginate slices newest-first rows out of an insertion-ordered slice.
func pageBounds(total, page, limit int) (int, int) {
	start := offsetFor(page, limit)
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}
	return start, end
}

func (m *MemStore) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = models.RoleUser
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.users = append(m.users, *user)
	return nil
}

func (m *MemStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) UpdateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, u := range m.users {
		if u.ID == user.ID {
			for j, other := range m.users {
				if j != i && other.Email == user.Email {
					return ErrDuplicate
				}
			}
			user.CreatedAt = u.CreatedAt
			user.UpdatedAt = time.Now()
			m.users[i] = *user
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemStore) DeleteUser(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, u := range m.users {
		if u.ID == id {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemStore) ListUsers(ctx context.Context, query string, page, limit int) ([]models.User, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []models.User
	for i := len(m.users) - 1; i >= 0; i-- {
		if matches(query, m.users[i].Name) {
			matched = append(matched, m.users[i])
		}
	}
	start, end := pageBounds(len(matched), page, limit)
	return matched[start:end], int64(len(matched)), nil
}

func (m *MemStore) CreateProduct(ctx context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.products {
		if p.Slug == product.Slug {
			return ErrDuplicate
		}
	}
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	if product.Rating == "" {
		product.Rating = "0.00"
	}
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	m.products = append(m.products, *product)
	return nil
}

func (m *MemStore) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, p := range m.products {
		if p.Slug == slug {
			product := p
			return &product, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) UpdateProduct(ctx context.Context, product *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.products {
		if p.ID == product.ID {
			for j, other := range m.products {
				if j != i && other.Slug == product.Slug {
					return ErrDuplicate
				}
			}
			product.CreatedAt = p.CreatedAt
			product.UpdatedAt = time.Now()
			m.products[i] = *product
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemStore) DeleteProduct(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, p := range m.products {
		if p.ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemStore) ListProducts(ctx context.Context, query string, page, limit int) ([]models.Product, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []models.Product
	for i := len(m.products) - 1; i >= 0; i-- {
		if matches(query, m.products[i].Name) {
			matched = append(matched, m.products[i])
		}
	}
	start, end := pageBounds(len(matched), page, limit)
	return matched[start:end], int64(len(matched)), nil
}

func (m *MemStore) ListFeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var featured []models.Product
	for i := len(m.products) - 1; i >= 0 && len(featured) < limit; i-- {
		if m.products[i].IsFeatured {
			featured = append(featured, m.products[i])
		}
	}
	return featured, nil
}

func cloneCart(c models.Cart) models.Cart {
	cart := c
	cart.Items = append([]models.CartItem(nil), c.Items...)
	return cart
}

func (m *MemStore) GetCartBySessionID(ctx context.Context, sessionCartID string) (*models.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.carts {
		if c.SessionCartID == sessionCartID {
			cart := cloneCart(c)
			return &cart, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) GetCartByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, c := range m.carts {
		if c.UserID != nil && *c.UserID == userID {
			cart := cloneCart(c)
			return &cart, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) SaveCart(ctx context.Context, cart *models.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cart.ID == "" {
		cart.ID = uuid.NewString()
		cart.CreatedAt = time.Now()
	}
	cart.UpdatedAt = time.Now()

	for i, c := range m.carts {
		if c.ID == cart.ID {
			m.carts[i] = cloneCart(*cart)
			return nil
		}
	}
	m.carts = append(m.carts, cloneCart(*cart))
	return nil
}

func (m *MemStore) DeleteCart(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, c := range m.carts {
		if c.ID == id {
			m.carts = append(m.carts[:i], m.carts[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemStore) CreateOrder(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Stock check first so a failed order leaves every product untouched.
	for _, item := range order.Items {
		found := false
		for _, p := range m.products {
			if p.ID == item.ProductID {
				found = true
				if p.Stock < item.Qty {
					return ErrInsufficientStock
				}
				break
			}
		}
		if !found {
			return ErrNotFound
		}
	}
	for _, item := range order.Items {
		for i := range m.products {
			if m.products[i].ID == item.ProductID {
				m.products[i].Stock -= item.Qty
			}
		}
	}

	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	stored := *order
	stored.Items = append([]models.OrderItem(nil), order.Items...)
	m.orders = append(m.orders, stored)
	return nil
}

func (m *MemStore) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, o := range m.orders {
		if o.ID == id {
			order := o
			order.Items = append([]models.OrderItem(nil), o.Items...)
			return &order, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) UpdateOrder(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, o := range m.orders {
		if o.ID == order.ID {
			order.CreatedAt = o.CreatedAt
			order.UpdatedAt = time.Now()
			stored := *order
			stored.Items = append([]models.OrderItem(nil), order.Items...)
			m.orders[i] = stored
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemStore) DeleteOrder(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, o := range m.orders {
		if o.ID == id {
			m.orders = append(m.orders[:i], m.orders[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *MemStore) ListOrdersByUser(ctx context.Context, userID string, page, limit int) ([]models.Order, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []models.Order
	for i := len(m.orders) - 1; i >= 0; i-- {
		if m.orders[i].UserID == userID {
			matched = append(matched, m.orders[i])
		}
	}
	start, end := pageBounds(len(matched), page, limit)
	return matched[start:end], int64(len(matched)), nil
}

func (m *MemStore) ListOrders(ctx context.Context, page, limit int) ([]models.Order, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var all []models.Order
	for i := len(m.orders) - 1; i >= 0; i-- {
		all = append(all, m.orders[i])
	}
	start, end := pageBounds(len(all), page, limit)
	return all[start:end], int64(len(all)), nil
}

func (m *MemStore) GetReview(ctx context.Context, userID, productID string) (*models.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, r := range m.reviews {
		if r.UserID == userID && r.ProductID == productID {
			review := r
			return &review, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) SaveReview(ctx context.Context, review *models.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.NewString()
		review.CreatedAt = time.Now()
	}
	review.UpdatedAt = time.Now()

	replaced := false
	for i, r := range m.reviews {
		if r.ID == review.ID {
			m.reviews[i] = *review
			replaced = true
			break
		}
	}
	if !replaced {
		m.reviews = append(m.reviews, *review)
	}

	var sum, count int64
	for _, r := range m.reviews {
		if r.ProductID == review.ProductID {
			sum += int64(r.Rating)
			count++
		}
	}
	for i := range m.products {
		if m.products[i].ID == review.ProductID {
			m.products[i].Rating = models.FormatCents((sum*100 + count/2) / count)
			m.products[i].NumReviews = int(count)
		}
	}
	return nil
}

func (m *MemStore) ListReviewsByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var reviews []models.Review
	for i := len(m.reviews) - 1; i >= 0; i-- {
		if m.reviews[i].ProductID == productID {
			reviews = append(reviews, m.reviews[i])
		}
	}
	return reviews, nil
}

func (m *MemStore) CreateLoginToken(ctx context.Context, token *models.LoginToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	token.CreatedAt = time.Now()
	m.tokens = append(m.tokens, *token)
	return nil
}

func (m *MemStore) GetLoginToken(ctx context.Context, token string) (*models.LoginToken, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, t := range m.tokens {
		if t.Token == token {
			loginToken := t
			return &loginToken, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemStore) DeleteLoginToken(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, t := range m.tokens {
		if t.Token == token {
			m.tokens = append(m.tokens[:i], m.tokens[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
