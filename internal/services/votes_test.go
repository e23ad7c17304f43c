package services

import (
	"context"
	"sync"
	"testing"

	"ideaforge/internal/apperr"
	"ideaforge/internal/db"
	"ideaforge/internal/models"
	"ideaforge/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countVotes(t *testing.T, ideaID, userID uint) (up, down int64) {
	t.Helper()
	require.NoError(t, db.DB.Model(&models.IdeaVote{}).Where("idea_id = ? AND user_id = ? AND value = 1", ideaID, userID).Count(&up).Error)
	require.NoError(t, db.DB.Model(&models.IdeaVote{}).Where("idea_id = ? AND user_id = ? AND value = -1", ideaID, userID).Count(&down).Error)
	return up, down
}

func TestCastIdeaVoteToggle(t *testing.T) {
	testutil.SetupDB(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, "author", 0)
	voter := testutil.CreateUser(t, "voter", 0)
	idea := testutil.CreateIdea(t, author.ID, "Pet sitter app")
	svc := NewVoteService()

	res, err := svc.CastIdeaVote(ctx, idea.ID, voter.ID, VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Upvotes)
	assert.True(t, res.DidUpvote)
	assert.Equal(t, 1, testutil.Reload[models.User](t, author.ID).Credits)

	res, err = svc.CastIdeaVote(ctx, idea.ID, voter.ID, VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Upvotes)
	assert.False(t, res.DidUpvote)
	assert.Equal(t, 0, testutil.Reload[models.User](t, author.ID).Credits)

	up, down := countVotes(t, idea.ID, voter.ID)
	assert.Zero(t, up)
	assert.Zero(t, down)
}

func TestCastIdeaVoteSwitchKeepsSetsExclusive(t *testing.T) {
	testutil.SetupDB(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, "author", 0)
	voter := testutil.CreateUser(t, "voter", 0)
	idea := testutil.CreateIdea(t, author.ID, "Recipe swap")
	svc := NewVoteService()

	_, err := svc.CastIdeaVote(ctx, idea.ID, voter.ID, VoteUp)
	require.NoError(t, err)
	res, err := svc.CastIdeaVote(ctx, idea.ID, voter.ID, VoteDown)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Upvotes)
	assert.Equal(t, 1, res.Downvotes)
	assert.False(t, res.DidUpvote)
	assert.True(t, res.DidDownvote)

	up, down := countVotes(t, idea.ID, voter.ID)
	assert.Equal(t, int64(0), up)
	assert.Equal(t, int64(1), down)

	// the upvote was worth one credit and the downvote took it back
	assert.Equal(t, 0, testutil.Reload[models.User](t, author.ID).Credits)

	// downvote toggled off does not touch credits
	_, err = svc.CastIdeaVote(ctx, idea.ID, voter.ID, VoteDown)
	require.NoError(t, err)
	assert.Equal(t, 0, testutil.Reload[models.User](t, author.ID).Credits)

	var logs []models.CreditLog
	require.NoError(t, db.DB.Where("user_id = ?", author.ID).Order("id").Find(&logs).Error)
	require.Len(t, logs, 2)
	assert.Equal(t, 1, logs[0].Amount)
	assert.Equal(t, ActionIdeaUpvoted, logs[0].Action)
	assert.Equal(t, -1, logs[1].Amount)
	assert.Equal(t, ActionIdeaUnvoted, logs[1].Action)
}

func TestCastIdeaVoteSelfVoteEarnsNothing(t *testing.T) {
	testutil.SetupDB(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, "author", 3)
	idea := testutil.CreateIdea(t, author.ID, "Habit tracker")

	res, err := NewVoteService().CastIdeaVote(ctx, idea.ID, author.ID, VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Upvotes)
	assert.Equal(t, 3, testutil.Reload[models.User](t, author.ID).Credits)

	var count int64
	db.DB.Model(&models.CreditLog{}).Count(&count)
	assert.Zero(t, count)
}

func TestCastIdeaVoteCreditsCanGoNegative(t *testing.T) {
	testutil.SetupDB(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, "author", 0)
	voter := testutil.CreateUser(t, "voter", 0)
	idea := testutil.CreateIdea(t, author.ID, "Plant reminders")
	svc := NewVoteService()

	_, err := svc.CastIdeaVote(ctx, idea.ID, voter.ID, VoteUp)
	require.NoError(t, err)

	// the author spends the credit before the upvote is withdrawn
	require.NoError(t, db.DB.Model(&models.User{}).Where("id = ?", author.ID).Update("credits", 0).Error)

	_, err = svc.CastIdeaVote(ctx, idea.ID, voter.ID, VoteUp)
	require.NoError(t, err)
	assert.Equal(t, -1, testutil.Reload[models.User](t, author.ID).Credits)
}

func TestCastIdeaVoteDeletedAuthor(t *testing.T) {
	testutil.SetupDB(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, "author", 0)
	voter := testutil.CreateUser(t, "voter", 0)
	idea := testutil.CreateIdea(t, author.ID, "Orphaned idea")
	require.NoError(t, db.DB.Delete(&models.User{}, author.ID).Error)

	res, err := NewVoteService().CastIdeaVote(ctx, idea.ID, voter.ID, VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Upvotes)

	var count int64
	db.DB.Model(&models.CreditLog{}).Count(&count)
	assert.Zero(t, count)
}

func TestCastIdeaVoteNotFound(t *testing.T) {
	testutil.SetupDB(t)
	voter := testutil.CreateUser(t, "voter", 0)

	_, err := NewVoteService().CastIdeaVote(context.Background(), 999, voter.ID, VoteUp)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCastIdeaVoteManyVoters(t *testing.T) {
	testutil.SetupDB(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, "author", 0)
	idea := testutil.CreateIdea(t, author.ID, "Crowd favourite")
	svc := NewVoteService()

	var voters []*models.User
	for _, name := range []string{"ann", "bob", "cat", "dan"} {
		voters = append(voters, testutil.CreateUser(t, name, 0))
	}

	var wg sync.WaitGroup
	for _, v := range voters {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := svc.CastIdeaVote(ctx, idea.ID, id, VoteUp)
			assert.NoError(t, err)
		}(v.ID)
	}
	wg.Wait()

	reloaded := testutil.Reload[models.Idea](t, idea.ID)
	assert.Equal(t, 4, reloaded.Upvotes)
	assert.Equal(t, 4, testutil.Reload[models.User](t, author.ID).Credits)
}

func TestCastCommentVote(t *testing.T) {
	testutil.SetupDB(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, "author", 0)
	voter := testutil.CreateUser(t, "voter", 0)
	idea := testutil.CreateIdea(t, author.ID, "Budget planner")

	comment, err := NewCommentService().Create(ctx, idea.ID, author.ID, CommentInput{Body: "first"})
	require.NoError(t, err)

	svc := NewVoteService()
	res, err := svc.CastCommentVote(ctx, idea.ID, comment.ID, voter.ID, VoteUp)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Upvotes)
	assert.True(t, res.DidUpvote)

	res, err = svc.CastCommentVote(ctx, idea.ID, comment.ID, voter.ID, VoteDown)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Upvotes)
	assert.Equal(t, 1, res.Downvotes)
	assert.True(t, res.DidDownvote)

	// comment votes never move credits
	assert.Equal(t, 0, testutil.Reload[models.User](t, author.ID).Credits)
}

func TestCastCommentVoteWrongIdea(t *testing.T) {
	testutil.SetupDB(t)
	ctx := context.Background()
	author := testutil.CreateUser(t, "author", 0)
	idea := testutil.CreateIdea(t, author.ID, "One")
	other := testutil.CreateIdea(t, author.ID, "Two")

	comment, err := NewCommentService().Create(ctx, idea.ID, author.ID, CommentInput{Body: "hi"})
	require.NoError(t, err)

	_, err = NewVoteService().CastCommentVote(ctx, other.ID, comment.ID, author.ID, VoteUp)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
