package services

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"ideaforge/internal/apperr"
	"ideaforge/internal/db"
	"ideaforge/internal/models"
	"ideaforge/internal/utils"

	"gorm.io/gorm"
)

const (
	MaxCommentDepth     = 6
	MaxCommentLength    = 10000
	DefaultCommentLimit = 50
	MaxCommentLimit     = 100
)

type CommentInput struct {
	Body     string `json:"texto"`
	ParentID *uint  `json:"parentCommentId"`
}

// CommentPage is one page of an idea's comments in flat form.
type CommentPage struct {
	Comments []models.Comment `json:"comments"`
	Total    int64            `json:"total"`
	HasMore  bool             `json:"hasMore"`
}

type CommentService struct{}

func NewCommentService() *CommentService {
	return &CommentService{}
}

func validateCommentBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", apperr.InvalidArgument("Comment text is required")
	}
	if utf8.RuneCountInString(body) > MaxCommentLength {
		return "", apperr.InvalidArgument("Comment must be at most 10000 characters")
	}
	return body, nil
}

func ideaExists(tx *gorm.DB, ideaID uint) error {
	var count int64
	if err := tx.Model(&models.Idea{}).Where("id = ?", ideaID).Count(&count).Error; err != nil {
		return apperr.Internal(err)
	}
	if count == 0 {
		return apperr.NotFound("Idea")
	}
	return nil
}

// Create adds a top-level comment or a reply. Replies nest at most MaxCommentDepth levels below a top-level comment.
func (s *CommentService) Create(ctx context.Context, ideaID, userID uint, in CommentInput) (*models.Comment, error) {
	body, err := validateCommentBody(in.Body)
	if err != nil {
		return nil, err
	}

	conn := db.DB.WithContext(ctx)
	if err := ideaExists(conn, ideaID); err != nil {
		return nil, err
	}

	depth := 0
	if in.ParentID != nil {
		var parent models.Comment
		err := conn.Select("id", "depth").
			Where("id = ? AND idea_id = ?", *in.ParentID, ideaID).
			First(&parent).Error
		if err != nil {
			return nil, notFoundOr(err, "Parent comment")
		}
		depth = parent.Depth + 1
		if depth > MaxCommentDepth {
			return nil, apperr.MaxDepthExceeded(MaxCommentDepth)
		}
	}

	comment := models.Comment{
		IdeaID:   ideaID,
		UserID:   userID,
		ParentID: in.ParentID,
		Depth:    depth,
		Body:     body,
	}
	if err := conn.Create(&comment).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	comments := []models.Comment{comment}
	if err := decorateComments(conn, comments, userID); err != nil {
		return nil, apperr.Internal(err)
	}
	slog.InfoContext(ctx, "comment created", "idea_id", ideaID, "comment_id", comment.ID, "depth", depth)
	return &comments[0], nil
}

// List pages through an idea's comments newest first, deleted ones included.
func (s *CommentService) List(ctx context.Context, ideaID, viewerID uint, limit, skip int) (*CommentPage, error) {
	if limit <= 0 {
		limit = DefaultCommentLimit
	}
	if limit > MaxCommentLimit {
		limit = MaxCommentLimit
	}
	if skip < 0 {
		skip = 0
	}

	conn := db.DB.WithContext(ctx)
	if err := ideaExists(conn, ideaID); err != nil {
		return nil, err
	}

	var total int64
	if err := conn.Model(&models.Comment{}).Where("idea_id = ?", ideaID).Count(&total).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	var comments []models.Comment
	err := conn.Where("idea_id = ?", ideaID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(skip).
		Find(&comments).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if err := decorateComments(conn, comments, viewerID); err != nil {
		return nil, apperr.Internal(err)
	}

	return &CommentPage{
		Comments: comments,
		Total:    total,
		HasMore:  int64(skip+len(comments)) < total,
	}, nil
}

// Thread returns every comment of the idea as a tree, top-level comments in the requested order.
func (s *CommentService) Thread(ctx context.Context, ideaID, viewerID uint, order string) ([]*CommentNode, error) {
	conn := db.DB.WithContext(ctx)
	if err := ideaExists(conn, ideaID); err != nil {
		return nil, err
	}

	var comments []models.Comment
	if err := conn.Where("idea_id = ?", ideaID).Find(&comments).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	if err := SortComments(comments, order); err != nil {
		return nil, err
	}
	if err := decorateComments(conn, comments, viewerID); err != nil {
		return nil, apperr.Internal(err)
	}
	return BuildCommentTree(comments), nil
}

func (s *CommentService) ownComment(tx *gorm.DB, ideaID, commentID, userID uint) (*models.Comment, error) {
	var comment models.Comment
	if err := tx.Where("id = ? AND idea_id = ?", commentID, ideaID).First(&comment).Error; err != nil {
		return nil, notFoundOr(err, "Comment")
	}
	if comment.UserID != userID {
		return nil, apperr.Forbidden("You can only modify your own comments")
	}
	return &comment, nil
}

// Delete soft-deletes the caller's comment. The row stays so replies keep their parent.
func (s *CommentService) Delete(ctx context.Context, ideaID, commentID, userID uint) (*models.Comment, error) {
	conn := db.DB.WithContext(ctx)
	comment, err := s.ownComment(conn, ideaID, commentID, userID)
	if err != nil {
		return nil, err
	}

	err = conn.Model(comment).Updates(map[string]any{
		"body":       models.DeletedCommentBody,
		"is_deleted": true,
	}).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}

	comment.Body = models.DeletedCommentBody
	comment.IsDeleted = true
	comments := []models.Comment{*comment}
	if err := decorateComments(conn, comments, userID); err != nil {
		return nil, apperr.Internal(err)
	}
	slog.InfoContext(ctx, "comment deleted", "idea_id", ideaID, "comment_id", commentID)
	return &comments[0], nil
}

// Edit replaces the text of the caller's comment.
func (s *CommentService) Edit(ctx context.Context, ideaID, commentID, userID uint, body string) (*models.Comment, error) {
	body, err := validateCommentBody(body)
	if err != nil {
		return nil, err
	}

	conn := db.DB.WithContext(ctx)
	comment, err := s.ownComment(conn, ideaID, commentID, userID)
	if err != nil {
		return nil, err
	}
	if comment.IsDeleted {
		return nil, apperr.InvalidArgument("Deleted comments cannot be edited")
	}

	if err := conn.Model(comment).Update("body", body).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	comment.Body = body
	comments := []models.Comment{*comment}
	if err := decorateComments(conn, comments, userID); err != nil {
		return nil, apperr.Internal(err)
	}
	return &comments[0], nil
}

func decorateComments(tx *gorm.DB, comments []models.Comment, viewerID uint) error {
	if len(comments) == 0 {
		return nil
	}

	ids := make([]uint, len(comments))
	authors := make([]uint, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
		authors[i] = c.UserID
	}

	names, err := userNames(tx, authors)
	if err != nil {
		return err
	}
	votes, err := votesByUser(tx, commentVotes, ids, viewerID)
	if err != nil {
		return err
	}

	for i := range comments {
		comments[i].UserName = names[comments[i].UserID]
		comments[i].DidUpvote = votes[comments[i].ID] == VoteUpvoted
		comments[i].DidDownvote = votes[comments[i].ID] == VoteDownvoted
		if !comments[i].IsDeleted {
			comments[i].BodyHTML = utils.RenderMarkdown(comments[i].Body)
		}
	}
	return nil
}
