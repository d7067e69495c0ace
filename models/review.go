package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review holds one rating per user and product; a second submission
// overwrites the first.
type Review struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"size:36;not null;uniqueIndex:idx_review_user_product" json:"userId"`
	ProductID   string    `gorm:"size:36;not null;uniqueIndex:idx_review_user_product" json:"productId"`
	Rating      int       `gorm:"not null" json:"rating"`
	Title       string    `gorm:"size:191;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
