package models

import "time"

// LoginToken mirrors every issued session token so sign-out can revoke it
// server-side before the JWT itself expires.
type LoginToken struct {
	ID             uint      `gorm:"primaryKey"`
	Token          string    `gorm:"uniqueIndex;size:512;not null"`
	UserID         string    `gorm:"size:36;index;not null"`
	Role           string    `gorm:"size:16;not null"`
	ExpirationTime time.Time `gorm:"not null"`
	CreatedAt      time.Time
}
