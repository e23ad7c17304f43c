package services

import (
	"ideaforge/internal/apperr"
)

type VoteType string

const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

// VoteState is a user's persisted vote on a single idea or comment.
type VoteState int

const (
	VoteNone      VoteState = 0
	VoteUpvoted   VoteState = 1
	VoteDownvoted VoteState = -1
)

func (s VoteState) String() string {
	switch s {
	case VoteUpvoted:
		return "upvoted"
	case VoteDownvoted:
		return "downvoted"
	default:
		return "none"
	}
}

func ParseVoteType(s string) (VoteType, error) {
	switch VoteType(s) {
	case VoteUp, VoteDown:
		return VoteType(s), nil
	}
	return "", apperr.InvalidArgument("Vote type must be 'upvote' or 'downvote'")
}

// NextVoteState applies a vote request. Repeating the current vote clears it,
// the opposite vote replaces it.
func NextVoteState(current VoteState, requested VoteType) VoteState {
	target := VoteUpvoted
	if requested == VoteDown {
		target = VoteDownvoted
	}
	if current == target {
		return VoteNone
	}
	return target
}

// CountDelta is the change to (upvotes, downvotes) when moving between states.
func CountDelta(from, to VoteState) (up, down int) {
	switch from {
	case VoteUpvoted:
		up--
	case VoteDownvoted:
		down--
	}
	switch to {
	case VoteUpvoted:
		up++
	case VoteDownvoted:
		down++
	}
	return up, down
}

// CreditDelta is the change to the idea author's balance caused by one vote request.
// Only upvotes earn credits: a new upvote is worth +1, losing an upvote
// (toggled off or replaced by a downvote) costs 1. Authors voting on their own ideas never move credits.
func CreditDelta(current VoteState, requested VoteType, voterIsAuthor bool) int {
	if voterIsAuthor {
		return 0
	}
	next := NextVoteState(current, requested)
	switch {
	case current != VoteUpvoted && next == VoteUpvoted:
		return 1
	case current == VoteUpvoted && next != VoteUpvoted:
		return -1
	}
	return 0
}
