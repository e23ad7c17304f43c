package services

import (
	"context"
	"testing"

	"ideaforge/internal/apperr"
	"ideaforge/internal/db"
	"ideaforge/internal/models"
	"ideaforge/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareAd(credits int) AdInput {
	return AdInput{
		ImageURL:     "https://cdn.example.com/ad.png",
		LinkURL:      "https://example.com",
		Type:         models.AdTypeSquare,
		CreditsSpent: credits,
	}
}

func TestCreateSquareAdAndDraw(t *testing.T) {
	testutil.SetupDB(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, "advertiser", 10)
	svc := NewAdService()

	ad, err := svc.Create(ctx, owner.ID, squareAd(10))
	require.NoError(t, err)
	assert.Equal(t, 100, ad.RemainingViews)
	assert.Equal(t, 0, testutil.Reload[models.User](t, owner.ID).Credits)

	drawn, err := svc.Draw(ctx)
	require.NoError(t, err)
	require.Len(t, drawn, 1)
	assert.Equal(t, 99, drawn[0].RemainingViews)
	assert.Equal(t, 99, testutil.Reload[models.Ad](t, ad.ID).RemainingViews)
}

func TestCreateBannerAdRate(t *testing.T) {
	testutil.SetupDB(t)
	owner := testutil.CreateUser(t, "advertiser", 3)

	in := squareAd(3)
	in.Type = models.AdTypeBanner
	ad, err := NewAdService().Create(context.Background(), owner.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 15, ad.RemainingViews)
}

func TestCreateAdInsufficientCredits(t *testing.T) {
	testutil.SetupDB(t)
	owner := testutil.CreateUser(t, "broke", 4)

	_, err := NewAdService().Create(context.Background(), owner.ID, squareAd(5))
	assert.True(t, apperr.Is(err, apperr.KindInsufficientCredits))
	assert.Equal(t, 4, testutil.Reload[models.User](t, owner.ID).Credits)

	var count int64
	db.DB.Model(&models.Ad{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateAdValidation(t *testing.T) {
	testutil.SetupDB(t)
	owner := testutil.CreateUser(t, "advertiser", 100)
	svc := NewAdService()
	ctx := context.Background()

	bad := []AdInput{
		{LinkURL: "https://example.com", Type: models.AdTypeSquare, CreditsSpent: 1},
		{ImageURL: "https://x/a.png", LinkURL: "https://example.com", Type: "popup", CreditsSpent: 1},
		{ImageURL: "https://x/a.png", LinkURL: "https://example.com", Type: models.AdTypeSquare, CreditsSpent: -2},
		{ImageURL: "javascript:alert(1)", LinkURL: "https://example.com", Type: models.AdTypeSquare, CreditsSpent: 1},
	}
	for _, in := range bad {
		_, err := svc.Create(ctx, owner.ID, in)
		assert.True(t, apperr.Is(err, apperr.KindInvalidArgument), "%+v", in)
	}
	assert.Equal(t, 100, testutil.Reload[models.User](t, owner.ID).Credits)
}

func TestDrawMixAndExhaustion(t *testing.T) {
	testutil.SetupDB(t)
	ctx := context.Background()

	ads := []models.Ad{
		{OwnerID: 1, ImageURL: "https://x/b1.png", LinkURL: "https://x", Type: models.AdTypeBanner, CreditsSpent: 1, RemainingViews: 5},
		{OwnerID: 1, ImageURL: "https://x/b2.png", LinkURL: "https://x", Type: models.AdTypeBanner, CreditsSpent: 1, RemainingViews: 0},
		{OwnerID: 1, ImageURL: "https://x/s1.png", LinkURL: "https://x", Type: models.AdTypeSquare, CreditsSpent: 1, RemainingViews: 1},
		{OwnerID: 1, ImageURL: "https://x/s2.png", LinkURL: "https://x", Type: models.AdTypeSquare, CreditsSpent: 1, RemainingViews: 10},
		{OwnerID: 1, ImageURL: "https://x/s3.png", LinkURL: "https://x", Type: models.AdTypeSquare, CreditsSpent: 1, RemainingViews: 10},
	}
	require.NoError(t, db.DB.Create(&ads).Error)

	svc := NewAdService()
	drawn, err := svc.Draw(ctx)
	require.NoError(t, err)
	require.Len(t, drawn, 3)

	var banners, squares int
	for _, ad := range drawn {
		switch ad.Type {
		case models.AdTypeBanner:
			banners++
			assert.Equal(t, ads[0].ID, ad.ID)
		case models.AdTypeSquare:
			squares++
		}
	}
	assert.Equal(t, 1, banners)
	assert.Equal(t, 2, squares)

	// nothing is ever drawn below zero
	for i := 0; i < 30; i++ {
		_, err := svc.Draw(ctx)
		require.NoError(t, err)
	}
	var negative int64
	db.DB.Model(&models.Ad{}).Where("remaining_views < 0").Count(&negative)
	assert.Zero(t, negative)

	drawn, err = svc.Draw(ctx)
	require.NoError(t, err)
	assert.Empty(t, drawn)
}

func TestViewsPerCredit(t *testing.T) {
	rate, ok := ViewsPerCredit(models.AdTypeBanner)
	assert.True(t, ok)
	assert.Equal(t, 5, rate)

	rate, ok = ViewsPerCredit(models.AdTypeSquare)
	assert.True(t, ok)
	assert.Equal(t, 10, rate)

	_, ok = ViewsPerCredit("popup")
	assert.False(t, ok)
}
