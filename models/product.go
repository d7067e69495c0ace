package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:191;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:191;not null" json:"slug"`
	Category    string    `gorm:"size:191;not null" json:"category"`
	Brand       string    `gorm:"size:191;not null" json:"brand"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       string    `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock       int       `gorm:"not null" json:"stock"`
	Images      []string  `gorm:"serializer:json" json:"images"`
	IsFeatured  bool      `gorm:"not null;default:false" json:"isFeatured"`
	Banner      *string   `gorm:"size:255" json:"banner"`
	Rating      string    `gorm:"type:decimal(3,2);not null;default:0" json:"rating"`
	NumReviews  int       `gorm:"not null;default:0" json:"numReviews"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Rating == "" {
		p.Rating = "0.00"
	}
	return nil
}
