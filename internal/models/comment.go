package models

import (
	"time"
)

const DeletedCommentBody = "[deleted]"

// Comment rows are never removed; deletion blanks the body so replies keep their parent.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	IdeaID    uint      `gorm:"not null;index" json:"ideaId"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	ParentID  *uint     `gorm:"index" json:"parentCommentId"` // Nullable for top-level comments
	Depth     int       `gorm:"default:0;not null" json:"depth"`
	Body      string    `gorm:"type:text;not null" json:"texto"`
	Upvotes   int       `gorm:"default:0;not null" json:"upvotes"`
	Downvotes int       `gorm:"default:0;not null" json:"downvotes"`
	IsDeleted bool      `gorm:"default:false;not null" json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	UserName    string `gorm:"-" json:"userName"`
	BodyHTML    string `gorm:"-" json:"textoHtml,omitempty"`
	DidUpvote   bool   `gorm:"-" json:"didUpvote"`
	DidDownvote bool   `gorm:"-" json:"didDownvote"`
}

func (c Comment) Score() int {
	return c.Upvotes - c.Downvotes
}
