package services

import (
	"context"
	"log/slog"

	"ideaforge/internal/db"
	"ideaforge/internal/models"
	"ideaforge/internal/observability"

	"gorm.io/gorm"
)

// VoteResult is the caller's view of a target after a vote.
type VoteResult struct {
	ID          uint `json:"id"`
	Upvotes     int  `json:"upvotes"`
	Downvotes   int  `json:"downvotes"`
	DidUpvote   bool `json:"didUpvote"`
	DidDownvote bool `json:"didDownvote"`
}

// voteTable describes where the vote rows of one kind of target live.
type voteTable struct {
	model  func() any
	column string
	newRow func(targetID, userID uint, value int) any
}

var (
	ideaVotes = voteTable{
		model:  func() any { return &models.IdeaVote{} },
		column: "idea_id",
		newRow: func(targetID, userID uint, value int) any {
			return &models.IdeaVote{IdeaID: targetID, UserID: userID, Value: value}
		},
	}
	commentVotes = voteTable{
		model:  func() any { return &models.CommentVote{} },
		column: "comment_id",
		newRow: func(targetID, userID uint, value int) any {
			return &models.CommentVote{CommentID: targetID, UserID: userID, Value: value}
		},
	}
)

func (t voteTable) current(tx *gorm.DB, targetID, userID uint) (VoteState, error) {
	var values []int
	err := tx.Model(t.model()).
		Where(t.column+" = ? AND user_id = ?", targetID, userID).
		Limit(1).
		Pluck("value", &values).Error
	if err != nil {
		return VoteNone, err
	}
	if len(values) == 0 {
		return VoteNone, nil
	}
	return VoteState(values[0]), nil
}

// write persists the move from current to next for one (target, user) pair.
func (t voteTable) write(tx *gorm.DB, targetID, userID uint, current, next VoteState) error {
	switch {
	case current == next:
		return nil
	case next == VoteNone:
		return tx.Where(t.column+" = ? AND user_id = ?", targetID, userID).Delete(t.model()).Error
	case current == VoteNone:
		return tx.Create(t.newRow(targetID, userID, int(next))).Error
	default:
		return tx.Model(t.model()).
			Where(t.column+" = ? AND user_id = ?", targetID, userID).
			Update("value", int(next)).Error
	}
}

// adjustCounters applies the counter delta for a state move to the target row.
func adjustCounters(tx *gorm.DB, model any, targetID uint, current, next VoteState) error {
	up, down := CountDelta(current, next)
	if up == 0 && down == 0 {
		return nil
	}
	return tx.Model(model).Where("id = ?", targetID).Updates(map[string]any{
		"upvotes":   gorm.Expr("upvotes + ?", up),
		"downvotes": gorm.Expr("downvotes + ?", down),
	}).Error
}

type VoteService struct{}

func NewVoteService() *VoteService {
	return &VoteService{}
}

// CastIdeaVote toggles the caller's vote on an idea and settles the author's credits
// in the same transaction.
func (s *VoteService) CastIdeaVote(ctx context.Context, ideaID, userID uint, voteType VoteType) (*VoteResult, error) {
	var (
		result VoteResult
		next   VoteState
		delta  int
	)

	err := db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var idea models.Idea
		if err := tx.Select("id", "author_id").First(&idea, ideaID).Error; err != nil {
			return notFoundOr(err, "Idea")
		}

		current, err := ideaVotes.current(tx, ideaID, userID)
		if err != nil {
			return err
		}
		next = NextVoteState(current, voteType)

		if err := ideaVotes.write(tx, ideaID, userID, current, next); err != nil {
			return err
		}
		if err := adjustCounters(tx, &models.Idea{}, ideaID, current, next); err != nil {
			return err
		}

		delta = CreditDelta(current, voteType, idea.AuthorID == userID)
		if err := AddCredits(tx, idea.AuthorID, delta, voteCreditAction(delta)); err != nil {
			return err
		}

		var updated models.Idea
		if err := tx.Select("id", "upvotes", "downvotes").First(&updated, ideaID).Error; err != nil {
			return err
		}
		result = VoteResult{
			ID:          updated.ID,
			Upvotes:     updated.Upvotes,
			Downvotes:   updated.Downvotes,
			DidUpvote:   next == VoteUpvoted,
			DidDownvote: next == VoteDownvoted,
		}
		return nil
	})
	if err != nil {
		return nil, internal(err)
	}

	observability.VotesCast.WithLabelValues("idea", next.String()).Inc()
	recordCredits(voteCreditAction(delta), delta)
	slog.DebugContext(ctx, "idea vote cast", "idea_id", ideaID, "state", next.String(), "credit_delta", delta)
	return &result, nil
}

// CastCommentVote toggles the caller's vote on a comment. Comment votes never move credits.
func (s *VoteService) CastCommentVote(ctx context.Context, ideaID, commentID, userID uint, voteType VoteType) (*VoteResult, error) {
	var (
		result VoteResult
		next   VoteState
	)

	err := db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment models.Comment
		if err := tx.Select("id").Where("id = ? AND idea_id = ?", commentID, ideaID).First(&comment).Error; err != nil {
			return notFoundOr(err, "Comment")
		}

		current, err := commentVotes.current(tx, commentID, userID)
		if err != nil {
			return err
		}
		next = NextVoteState(current, voteType)

		if err := commentVotes.write(tx, commentID, userID, current, next); err != nil {
			return err
		}
		if err := adjustCounters(tx, &models.Comment{}, commentID, current, next); err != nil {
			return err
		}

		var updated models.Comment
		if err := tx.Select("id", "upvotes", "downvotes").First(&updated, commentID).Error; err != nil {
			return err
		}
		result = VoteResult{
			ID:          updated.ID,
			Upvotes:     updated.Upvotes,
			Downvotes:   updated.Downvotes,
			DidUpvote:   next == VoteUpvoted,
			DidDownvote: next == VoteDownvoted,
		}
		return nil
	})
	if err != nil {
		return nil, internal(err)
	}

	observability.VotesCast.WithLabelValues("comment", next.String()).Inc()
	return &result, nil
}

func voteCreditAction(delta int) string {
	if delta < 0 {
		return ActionIdeaUnvoted
	}
	return ActionIdeaUpvoted
}

// votesByUser maps target id to the viewer's vote state for the given targets.
func votesByUser(tx *gorm.DB, t voteTable, targetIDs []uint, userID uint) (map[uint]VoteState, error) {
	out := make(map[uint]VoteState, len(targetIDs))
	if userID == 0 || len(targetIDs) == 0 {
		return out, nil
	}

	type row struct {
		TargetID uint
		Value    int
	}
	var rows []row
	err := tx.Model(t.model()).
		Select(t.column+" AS target_id, value").
		Where(t.column+" IN ? AND user_id = ?", targetIDs, userID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.TargetID] = VoteState(r.Value)
	}
	return out, nil
}
