package services

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"ideaforge/internal/apperr"
	"ideaforge/internal/db"
	"ideaforge/internal/models"
	"ideaforge/internal/observability"

	"gorm.io/gorm"
)

const (
	BannerViewsPerCredit = 5
	SquareViewsPerCredit = 10

	bannersPerDraw = 1
	squaresPerDraw = 2
)

// ViewsPerCredit returns how many views one credit buys for a placement type.
// Banners sit higher on the page, so a credit buys fewer of them.
func ViewsPerCredit(adType string) (int, bool) {
	switch adType {
	case models.AdTypeBanner:
		return BannerViewsPerCredit, true
	case models.AdTypeSquare:
		return SquareViewsPerCredit, true
	}
	return 0, false
}

type AdInput struct {
	ImageURL     string `json:"imageUrl"`
	LinkURL      string `json:"linkUrl"`
	Type         string `json:"type"`
	CreditsSpent int    `json:"creditsSpent"`
}

type AdService struct{}

func NewAdService() *AdService {
	return &AdService{}
}

func validAdURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Create spends the owner's credits and creates the ad in one transaction.
func (s *AdService) Create(ctx context.Context, ownerID uint, in AdInput) (*models.Ad, error) {
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	in.LinkURL = strings.TrimSpace(in.LinkURL)

	if in.ImageURL == "" || in.LinkURL == "" || in.Type == "" || in.CreditsSpent == 0 {
		return nil, apperr.InvalidArgument("Missing required fields")
	}
	rate, ok := ViewsPerCredit(in.Type)
	if !ok {
		return nil, apperr.InvalidArgument("Ad type must be 'banner' or 'square'")
	}
	if in.CreditsSpent < 0 {
		return nil, apperr.InvalidArgument("creditsSpent must be positive")
	}
	if !validAdURL(in.ImageURL) || !validAdURL(in.LinkURL) {
		return nil, apperr.InvalidArgument("imageUrl and linkUrl must be http(s) URLs")
	}

	ad := models.Ad{
		OwnerID:        ownerID,
		ImageURL:       in.ImageURL,
		LinkURL:        in.LinkURL,
		Type:           in.Type,
		CreditsSpent:   in.CreditsSpent,
		RemainingViews: in.CreditsSpent * rate,
	}

	err := db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("id = ?", ownerID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.NotFound("User")
		}
		if err := SpendCredits(tx, ownerID, in.CreditsSpent, ActionAdPurchase); err != nil {
			return err
		}
		return tx.Create(&ad).Error
	})
	if err != nil {
		return nil, internal(err)
	}

	observability.AdsCreated.WithLabelValues(ad.Type).Inc()
	recordCredits(ActionAdPurchase, -in.CreditsSpent)
	slog.InfoContext(ctx, "ad created", "ad_id", ad.ID, "type", ad.Type, "views", ad.RemainingViews)
	return &ad, nil
}

// Draw picks one banner and up to two squares among ads with views left and charges one view to each.
func (s *AdService) Draw(ctx context.Context) ([]models.Ad, error) {
	conn := db.DB.WithContext(ctx)

	banners, err := sampleAds(conn, models.AdTypeBanner, bannersPerDraw)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	squares, err := sampleAds(conn, models.AdTypeSquare, squaresPerDraw)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	ads := append(banners, squares...)
	if len(ads) == 0 {
		return ads, nil
	}

	ids := make([]uint, len(ads))
	for i, ad := range ads {
		ids[i] = ad.ID
	}

	// the guard keeps a concurrent draw from taking the counter below zero
	err = conn.Model(&models.Ad{}).
		Where("id IN ? AND remaining_views > 0", ids).
		UpdateColumn("remaining_views", gorm.Expr("remaining_views - 1")).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}

	for i := range ads {
		if ads[i].RemainingViews > 0 {
			ads[i].RemainingViews--
		}
		observability.AdsServed.WithLabelValues(ads[i].Type).Inc()
	}
	return ads, nil
}

func sampleAds(tx *gorm.DB, adType string, n int) ([]models.Ad, error) {
	var ads []models.Ad
	err := tx.Where("type = ? AND remaining_views > 0", adType).
		Order("RANDOM()").
		Limit(n).
		Find(&ads).Error
	return ads, err
}
