package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"` // display name, can be modified
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"not null" json:"-"` // Hash
	AvatarBase64 string    `gorm:"type:text" json:"avatarBase64,omitempty"`
	Credits      int       `gorm:"default:0;not null" json:"credits"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	// No DeletedAt for hard delete
}
