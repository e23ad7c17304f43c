package services

import (
	"sort"

	"ideaforge/internal/apperr"
	"ideaforge/internal/models"
)

const (
	CommentSortNewest = "newest"
	CommentSortTop    = "top"
)

// CommentNode is a comment with its direct replies.
type CommentNode struct {
	models.Comment
	Replies []*CommentNode `json:"replies"`
}

// BuildCommentTree nests a flat comment list by parent. Replies are ordered oldest
// first; roots keep their input order so callers can sort them with SortComments first.
// Comments whose parent is not in the list cannot be placed and are left out.
func BuildCommentTree(comments []models.Comment) []*CommentNode {
	nodes := make(map[uint]*CommentNode, len(comments))
	for _, c := range comments {
		nodes[c.ID] = &CommentNode{Comment: c, Replies: []*CommentNode{}}
	}

	roots := make([]*CommentNode, 0)
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*c.ParentID]; ok {
			parent.Replies = append(parent.Replies, node)
		}
	}

	for _, node := range nodes {
		sortReplies(node.Replies)
	}
	return roots
}

func sortReplies(replies []*CommentNode) {
	sort.SliceStable(replies, func(i, j int) bool {
		a, b := replies[i], replies[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// SortComments orders comments in place: newest first, or by score with newer comments winning ties.
func SortComments(comments []models.Comment, order string) error {
	switch order {
	case "", CommentSortNewest:
		sort.SliceStable(comments, func(i, j int) bool {
			return newer(comments[i], comments[j])
		})
	case CommentSortTop:
		sort.SliceStable(comments, func(i, j int) bool {
			si, sj := comments[i].Score(), comments[j].Score()
			if si != sj {
				return si > sj
			}
			return newer(comments[i], comments[j])
		})
	default:
		return apperr.InvalidArgument("sort must be 'newest' or 'top'")
	}
	return nil
}

func newer(a, b models.Comment) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
