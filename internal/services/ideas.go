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
	MaxDescriptionLength = 500
	MinTags              = 3
	DefaultIdeaLimit     = 50
	MaxIdeaLimit         = 100

	SortNewest  = "newest"
	SortPopular = "popular"
)

type IdeaInput struct {
	Title       string   `json:"titulo"`
	Description string   `json:"descricao"`
	Tags        []string `json:"tags"`
}

type IdeaService struct{}

func NewIdeaService() *IdeaService {
	return &IdeaService{}
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (s *IdeaService) Create(ctx context.Context, authorID uint, in IdeaInput) (*models.Idea, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	tags := cleanTags(in.Tags)

	if title == "" {
		return nil, apperr.InvalidArgument("Title is required")
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return nil, apperr.InvalidArgument("Description must be at most 500 characters")
	}
	if len(tags) < MinTags {
		return nil, apperr.InvalidArgument("At least 3 tags are required")
	}

	idea := models.Idea{
		Title:       title,
		Description: description,
		Tags:        tags,
		AuthorID:    authorID,
	}
	if err := db.DB.WithContext(ctx).Create(&idea).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	ideas := []models.Idea{idea}
	if err := decorateIdeas(db.DB.WithContext(ctx), ideas, authorID); err != nil {
		return nil, apperr.Internal(err)
	}
	slog.InfoContext(ctx, "idea created", "idea_id", idea.ID)
	return &ideas[0], nil
}

func (s *IdeaService) Get(ctx context.Context, ideaID, viewerID uint) (*models.Idea, error) {
	conn := db.DB.WithContext(ctx)

	var idea models.Idea
	if err := conn.First(&idea, ideaID).Error; err != nil {
		return nil, notFoundOr(err, "Idea")
	}

	ideas := []models.Idea{idea}
	if err := decorateIdeas(conn, ideas, viewerID); err != nil {
		return nil, apperr.Internal(err)
	}
	return &ideas[0], nil
}

// List returns ideas sorted by recency or by net votes.
func (s *IdeaService) List(ctx context.Context, viewerID uint, sortBy string, limit int) ([]models.Idea, error) {
	if limit <= 0 {
		limit = DefaultIdeaLimit
	}
	if limit > MaxIdeaLimit {
		limit = MaxIdeaLimit
	}

	conn := db.DB.WithContext(ctx)
	query := conn.Model(&models.Idea{}).Limit(limit)
	switch sortBy {
	case "", SortNewest:
		query = query.Order("created_at DESC, id DESC")
	case SortPopular:
		query = query.Order("(upvotes - downvotes) DESC, created_at DESC, id DESC")
	default:
		return nil, apperr.InvalidArgument("sortBy must be 'newest' or 'popular'")
	}

	var ideas []models.Idea
	if err := query.Find(&ideas).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	if err := decorateIdeas(conn, ideas, viewerID); err != nil {
		return nil, apperr.Internal(err)
	}
	return ideas, nil
}

// decorateIdeas fills the read-time fields: author names, comment counts, the viewer's votes and rendered markdown.
func decorateIdeas(tx *gorm.DB, ideas []models.Idea, viewerID uint) error {
	if len(ideas) == 0 {
		return nil
	}

	ids := make([]uint, len(ideas))
	authors := make([]uint, len(ideas))
	for i, idea := range ideas {
		ids[i] = idea.ID
		authors[i] = idea.AuthorID
	}

	names, err := userNames(tx, authors)
	if err != nil {
		return err
	}
	counts, err := commentCounts(tx, ids)
	if err != nil {
		return err
	}
	votes, err := votesByUser(tx, ideaVotes, ids, viewerID)
	if err != nil {
		return err
	}

	for i := range ideas {
		ideas[i].AuthorName = names[ideas[i].AuthorID]
		ideas[i].CommentCount = counts[ideas[i].ID]
		ideas[i].DidUpvote = votes[ideas[i].ID] == VoteUpvoted
		ideas[i].DidDownvote = votes[ideas[i].ID] == VoteDownvoted
		ideas[i].DescriptionHTML = utils.RenderMarkdown(ideas[i].Description)
	}
	return nil
}

// commentCounts 批量查询评论数量，不含已删除的评论
func commentCounts(tx *gorm.DB, ideaIDs []uint) (map[uint]int, error) {
	type countResult struct {
		IdeaID uint
		Count  int
	}
	var results []countResult
	err := tx.Model(&models.Comment{}).
		Select("idea_id, COUNT(*) as count").
		Where("idea_id IN ? AND is_deleted = ?", ideaIDs, false).
		Group("idea_id").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.IdeaID] = r.Count
	}
	return countMap, nil
}
