package seed

import (
	"context"
	"testing"

	"ideaforge/internal/db"
	"ideaforge/internal/models"
	"ideaforge/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	testutil.SetupDB(t)

	opts := Options{Users: 4, IdeasPerUser: 2, CommentsPerIdea: 3, Ads: 2, Seed: 7}
	sum, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, 4, sum.Users)
	assert.Equal(t, 8, sum.Ideas)
	assert.Equal(t, 24, sum.Comments)

	var ideas int64
	db.DB.Model(&models.Idea{}).Count(&ideas)
	assert.Equal(t, int64(8), ideas)

	// every comment respects the depth limit
	var tooDeep int64
	db.DB.Model(&models.Comment{}).Where("depth > ?", 6).Count(&tooDeep)
	assert.Zero(t, tooDeep)

	// balances are the ledger sum, net of ad purchases
	var users []models.User
	require.NoError(t, db.DB.Find(&users).Error)
	for _, u := range users {
		var total int
		db.DB.Model(&models.CreditLog{}).Where("user_id = ?", u.ID).Select("COALESCE(SUM(amount), 0)").Scan(&total)
		assert.Equal(t, total, u.Credits, u.Name)
	}
}

func TestRunNoUsers(t *testing.T) {
	testutil.SetupDB(t)

	sum, err := Run(context.Background(), Options{})
	require.NoError(t, err)
	assert.Equal(t, &Summary{}, sum)
}
