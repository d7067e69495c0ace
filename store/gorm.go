package store

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/models"
)

type gormStore struct {
	db *gorm.DB
}

// NewGorm wraps a gorm connection as a Gateway.
func NewGorm(db *gorm.DB) Gateway {
	return &gormStore{db: db}
}

// AutoMigrate creates or updates the schema for every entity.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.LoginToken{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	)
}

// translate maps gorm and driver errors onto the gateway sentinels so raw
// datastore errors never reach a client.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(err.Error(), "Duplicate entry"):
		return ErrDuplicate
	default:
		return err
	}
}

func (s *gormStore) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *gormStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *gormStore) UpdateUser(ctx context.Context, user *models.User) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(user)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) DeleteUser(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) ListUsers(ctx context.Context, query string, page, limit int) ([]models.User, int64, error) {
	tx := s.db.WithContext(ctx).Model(&models.User{})
	if !filtersAll(query) {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, translate(err)
	}

	var users []models.User
	err := tx.Order("created_at DESC").
		Limit(limit).
		Offset(offsetFor(page, limit)).
		Find(&users).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return users, count, nil
}

func (s *gormStore) CreateProduct(ctx context.Context, product *models.Product) error {
	return translate(s.db.WithContext(ctx).Create(product).Error)
}

func (s *gormStore) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *gormStore) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, "slug = ?", slug).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (s *gormStore) UpdateProduct(ctx context.Context, product *models.Product) error {
	result := s.db.WithContext(ctx).Save(product)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) DeleteProduct(ctx context.Context, id string) error {
	result := s.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) ListProducts(ctx context.Context, query string, page, limit int) ([]models.Product, int64, error) {
	tx := s.db.WithContext(ctx).Model(&models.Product{})
	if !filtersAll(query) {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, translate(err)
	}

	var products []models.Product
	err := tx.Order("created_at DESC").
		Limit(limit).
		Offset(offsetFor(page, limit)).
		Find(&products).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return products, count, nil
}

func (s *gormStore) ListFeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Where("is_featured = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, translate(err)
	}
	return products, nil
}

func (s *gormStore) GetCartBySessionID(ctx context.Context, sessionCartID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Preload("Items").
		First(&cart, "session_cart_id = ?", sessionCartID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

func (s *gormStore) GetCartByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).
		Preload("Items").
		First(&cart, "user_id = ?", userID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &cart, nil
}

func (s *gormStore) SaveCart(ctx context.Context, cart *models.Cart) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if cart.ID == "" {
			return tx.Create(cart).Error
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		for i := range cart.Items {
			cart.Items[i].ID = 0
			cart.Items[i].CartID = cart.ID
		}
		if len(cart.Items) > 0 {
			if err := tx.Create(&cart.Items).Error; err != nil {
				return err
			}
		}
		return tx.Model(&models.Cart{}).Where("id = ?", cart.ID).Updates(map[string]any{
			"user_id":        cart.UserID,
			"items_price":    cart.ItemsPrice,
			"shipping_price": cart.ShippingPrice,
			"tax_price":      cart.TaxPrice,
			"total_price":    cart.TotalPrice,
		}).Error
	}))
}

func (s *gormStore) DeleteCart(ctx context.Context, id string) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Cart{}, "id = ?", id).Error
	}))
}

func (s *gormStore) CreateOrder(ctx context.Context, order *models.Order) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			var product models.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", item.ProductID).Error
			if err != nil {
				return err
			}
			if product.Stock < item.Qty {
				return ErrInsufficientStock
			}
			err = tx.Model(&models.Product{}).
				Where("id = ?", product.ID).
				Update("stock", product.Stock-item.Qty).Error
			if err != nil {
				return err
			}
		}
		return tx.Create(order).Error
	}))
}

func (s *gormStore) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (s *gormStore) UpdateOrder(ctx context.Context, order *models.Order) error {
	result := s.db.WithContext(ctx).Omit("Items").Save(order)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *gormStore) DeleteOrder(ctx context.Context, id string) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}))
}

func (s *gormStore) ListOrdersByUser(ctx context.Context, userID string, page, limit int) ([]models.Order, int64, error) {
	tx := s.db.WithContext(ctx).Model(&models.Order{}).Where("user_id = ?", userID)

	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return nil, 0, translate(err)
	}

	var orders []models.Order
	err := tx.Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Offset(offsetFor(page, limit)).
		Find(&orders).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return orders, count, nil
}

func (s *gormStore) ListOrders(ctx context.Context, page, limit int) ([]models.Order, int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error; err != nil {
		return nil, 0, translate(err)
	}

	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Offset(offsetFor(page, limit)).
		Find(&orders).Error
	if err != nil {
		return nil, 0, translate(err)
	}
	return orders, count, nil
}

func (s *gormStore) GetReview(ctx context.Context, userID, productID string) (*models.Review, error) {
	var review models.Review
	err := s.db.WithContext(ctx).
		First(&review, "user_id = ? AND product_id = ?", userID, productID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &review, nil
}

func (s *gormStore) SaveReview(ctx context.Context, review *models.Review) error {
	return translate(s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(review).Error; err != nil {
			return err
		}

		var stats struct {
			Avg   float64
			Count int64
		}
		err := tx.Model(&models.Review{}).
			Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
			Where("product_id = ?", review.ProductID).
			Scan(&stats).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.Product{}).
			Where("id = ?", review.ProductID).
			Updates(map[string]any{
				"rating":      models.FormatCents(int64(stats.Avg*100 + 0.5)),
				"num_reviews": stats.Count,
			}).Error
	}))
}

func (s *gormStore) ListReviewsByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, translate(err)
	}
	return reviews, nil
}

func (s *gormStore) CreateLoginToken(ctx context.Context, token *models.LoginToken) error {
	return translate(s.db.WithContext(ctx).Create(token).Error)
}

func (s *gormStore) GetLoginToken(ctx context.Context, token string) (*models.LoginToken, error) {
	var loginToken models.LoginToken
	if err := s.db.WithContext(ctx).First(&loginToken, "token = ?", token).Error; err != nil {
		return nil, translate(err)
	}
	return &loginToken, nil
}

func (s *gormStore) DeleteLoginToken(ctx context.Context, token string) error {
	result := s.db.WithContext(ctx).Delete(&models.LoginToken{}, "token = ?", token)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
