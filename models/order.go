package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentResult is the confirmation record returned by the payment provider,
// stored as a JSON column on the order.
type PaymentResult struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	EmailAddress string `json:"email_address"`
	PricePaid    string `json:"pricePaid"`
}

type Order struct {
	ID              string          `gorm:"primaryKey;size:36" json:"id"`
	UserID          string          `gorm:"size:36;index;not null" json:"userId"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingAddress ShippingAddress `gorm:"serializer:json" json:"shippingAddress"`
	PaymentMethod   string          `gorm:"size:64;not null" json:"paymentMethod"`
	PaymentResult   *PaymentResult  `gorm:"serializer:json" json:"paymentResult,omitempty"`
	ItemsPrice      string          `gorm:"type:decimal(12,2);not null" json:"itemsPrice"`
	ShippingPrice   string          `gorm:"type:decimal(12,2);not null" json:"shippingPrice"`
	TaxPrice        string          `gorm:"type:decimal(12,2);not null" json:"taxPrice"`
	TotalPrice      string          `gorm:"type:decimal(12,2);not null" json:"totalPrice"`
	IsPaid          bool            `gorm:"not null;default:false" json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty"`
	IsDelivered     bool            `gorm:"not null;default:false" json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
