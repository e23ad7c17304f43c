package models

import (
	"time"
)

// One row per (idea, user). Value is 1 or -1, so a user sits in at most one of the two sets.
type IdeaVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	IdeaID    uint      `gorm:"not null;uniqueIndex:idx_idea_vote" json:"ideaId"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_idea_vote;index" json:"userId"`
	Value     int       `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CommentVote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_vote" json:"commentId"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_vote;index" json:"userId"`
	Value     int       `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
