package models

import (
	"time"
)

type Idea struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"titulo"`
	Description string    `gorm:"type:text" json:"descricao"`
	Tags        []string  `gorm:"serializer:json;type:text" json:"tags"`
	AuthorID    uint      `gorm:"not null;index" json:"autorId"`
	Upvotes     int       `gorm:"default:0;not null" json:"upvotes"`
	Downvotes   int       `gorm:"default:0;not null" json:"downvotes"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// 非数据库字段，用于查询时填充
	AuthorName      string `gorm:"-" json:"autorName"`
	DescriptionHTML string `gorm:"-" json:"descricaoHtml,omitempty"`
	CommentCount    int    `gorm:"-" json:"commentCount"`
	DidUpvote       bool   `gorm:"-" json:"didUpvote"`
	DidDownvote     bool   `gorm:"-" json:"didDownvote"`
}
