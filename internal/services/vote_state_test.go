package services

import (
	"testing"

	"ideaforge/internal/apperr"

	"github.com/stretchr/testify/assert"
)

func TestNextVoteState(t *testing.T) {
	tests := []struct {
		current   VoteState
		requested VoteType
		want      VoteState
	}{
		{VoteNone, VoteUp, VoteUpvoted},
		{VoteNone, VoteDown, VoteDownvoted},
		{VoteUpvoted, VoteUp, VoteNone},
		{VoteUpvoted, VoteDown, VoteDownvoted},
		{VoteDownvoted, VoteDown, VoteNone},
		{VoteDownvoted, VoteUp, VoteUpvoted},
	}

	for _, tt := range tests {
		t.Run(tt.current.String()+"/"+string(tt.requested), func(t *testing.T) {
			assert.Equal(t, tt.want, NextVoteState(tt.current, tt.requested))
		})
	}
}

func TestNextVoteStateToggleReturnsToStart(t *testing.T) {
	for _, start := range []VoteState{VoteNone, VoteUpvoted, VoteDownvoted} {
		for _, vt := range []VoteType{VoteUp, VoteDown} {
			once := NextVoteState(start, vt)
			twice := NextVoteState(once, vt)
			if start == VoteNone || (start == VoteUpvoted && vt == VoteUp) || (start == VoteDownvoted && vt == VoteDown) {
				assert.Equal(t, start, twice, "%s then %s twice", start, vt)
			}
		}
	}
}

func TestCountDelta(t *testing.T) {
	up, down := CountDelta(VoteNone, VoteUpvoted)
	assert.Equal(t, [2]int{1, 0}, [2]int{up, down})

	up, down = CountDelta(VoteUpvoted, VoteDownvoted)
	assert.Equal(t, [2]int{-1, 1}, [2]int{up, down})

	up, down = CountDelta(VoteDownvoted, VoteNone)
	assert.Equal(t, [2]int{0, -1}, [2]int{up, down})

	up, down = CountDelta(VoteUpvoted, VoteUpvoted)
	assert.Equal(t, [2]int{0, 0}, [2]int{up, down})
}

func TestCreditDelta(t *testing.T) {
	tests := []struct {
		name      string
		current   VoteState
		requested VoteType
		isAuthor  bool
		want      int
	}{
		{"new upvote", VoteNone, VoteUp, false, 1},
		{"toggle off upvote", VoteUpvoted, VoteUp, false, -1},
		{"downvote replaces upvote", VoteUpvoted, VoteDown, false, -1},
		{"upvote replaces downvote", VoteDownvoted, VoteUp, false, 1},
		{"new downvote", VoteNone, VoteDown, false, 0},
		{"toggle off downvote", VoteDownvoted, VoteDown, false, 0},
		{"self upvote", VoteNone, VoteUp, true, 0},
		{"self toggle off", VoteUpvoted, VoteUp, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CreditDelta(tt.current, tt.requested, tt.isAuthor))
		})
	}
}

func TestParseVoteType(t *testing.T) {
	vt, err := ParseVoteType("upvote")
	assert.NoError(t, err)
	assert.Equal(t, VoteUp, vt)

	_, err = ParseVoteType("sideways")
	assert.True(t, apperr.Is(err, apperr.KindInvalidArgument))
}
