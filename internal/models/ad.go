package models

import (
	"time"
)

const (
	AdTypeBanner = "banner"
	AdTypeSquare = "square"
)

type Ad struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OwnerID        uint      `gorm:"not null;index" json:"ownerId"`
	ImageURL       string    `gorm:"type:text;not null" json:"imageUrl"`
	LinkURL        string    `gorm:"type:text;not null" json:"linkUrl"`
	Type           string    `gorm:"size:20;not null;index" json:"type"`
	CreditsSpent   int       `gorm:"not null" json:"creditsSpent"`
	RemainingViews int       `gorm:"not null;default:0" json:"remainingViews"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
