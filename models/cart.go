package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Cart belongs to a signed-in user or, before sign-in, to the session cart
// id carried in a cookie. Price fields are derived from the items and
// recomputed on every mutation.
type Cart struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	UserID        *string    `gorm:"size:36;index" json:"userId,omitempty"`
	SessionCartID string     `gorm:"uniqueIndex;size:36;not null" json:"sessionCartId"`
	Items         []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	ItemsPrice    string     `gorm:"type:decimal(12,2);not null;default:0" json:"itemsPrice"`
	ShippingPrice string     `gorm:"type:decimal(12,2);not null;default:0" json:"shippingPrice"`
	TaxPrice      string     `gorm:"type:decimal(12,2);not null;default:0" json:"taxPrice"`
	TotalPrice    string     `gorm:"type:decimal(12,2);not null;default:0" json:"totalPrice"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// FindItem returns the line for productID, or nil.
func (c *Cart) FindItem(productID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}
