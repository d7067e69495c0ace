package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserRoles is the closed set of roles accepted at validation time.
var UserRoles = []string{RoleAdmin, RoleUser}

// ShippingAddress is stored as a JSON column on User and Order.
type ShippingAddress struct {
	FullName      string  `json:"fullName"`
	StreetAddress string  `json:"streetAddress"`
	City          string  `json:"city"`
	PostalCode    string  `json:"postalCode"`
	Country       string  `json:"country"`
	Lat           float64 `json:"lat,omitempty"`
	Lng           float64 `json:"lng,omitempty"`
}

type User struct {
	ID            string           `gorm:"primaryKey;size:36" json:"id"`
	Name          string           `gorm:"size:191;not null" json:"name"`
	Email         string           `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Password      string           `gorm:"size:191;not null" json:"-"`
	Role          string           `gorm:"size:16;not null;default:user" json:"role"`
	Address       *ShippingAddress `gorm:"serializer:json" json:"address,omitempty"`
	PaymentMethod string           `gorm:"size:64" json:"paymentMethod,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}
