package models

// CartItem snapshots the product fields the storefront renders so the cart
// stays displayable if the product changes later.
type CartItem struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	CartID    string `gorm:"size:36;index;not null" json:"-"`
	ProductID string `gorm:"size:36;not null" json:"productId"`
	Name      string `gorm:"size:191;not null" json:"name"`
	Slug      string `gorm:"size:191;not null" json:"slug"`
	Qty       int    `gorm:"not null" json:"qty"`
	Image     string `gorm:"size:255;not null" json:"image"`
	Price     string `gorm:"type:decimal(12,2);not null" json:"price"`
}
