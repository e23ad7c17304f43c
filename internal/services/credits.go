package services

import (
	"context"

	"ideaforge/internal/apperr"
	"ideaforge/internal/db"
	"ideaforge/internal/models"
	"ideaforge/internal/observability"

	"gorm.io/gorm"
)

// 积分动作常量
const (
	ActionIdeaUpvoted   = "idea_upvoted"
	ActionIdeaUnvoted   = "idea_upvote_removed"
	ActionAdPurchase    = "ad_purchase"
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// AddCredits moves the balance and records a ledger row inside tx.
// The balance has no floor; losing an upvote may take it below zero.
// A user that no longer exists is skipped without error.
func AddCredits(tx *gorm.DB, userID uint, amount int, action string) error {
	if amount == 0 {
		return nil
	}

	// 1. 更新用户积分余额
	res := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("credits", gorm.Expr("credits + ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}

	// 2. 创建积分明细记录
	return tx.Create(&models.CreditLog{
		UserID: userID,
		Amount: amount,
		Action: action,
	}).Error
}

// SpendCredits deducts amount only if the balance covers it.
func SpendCredits(tx *gorm.DB, userID uint, amount int, action string) error {
	res := tx.Model(&models.User{}).
		Where("id = ? AND credits >= ?", userID, amount).
		UpdateColumn("credits", gorm.Expr("credits - ?", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.InsufficientCredits()
	}

	return tx.Create(&models.CreditLog{
		UserID: userID,
		Amount: -amount,
		Action: action,
	}).Error
}

type CreditService struct{}

func NewCreditService() *CreditService {
	return &CreditService{}
}

func (s *CreditService) Balance(ctx context.Context, userID uint) (int, error) {
	var user models.User
	if err := db.DB.WithContext(ctx).Select("id", "credits").First(&user, userID).Error; err != nil {
		return 0, notFoundOr(err, "User")
	}
	return user.Credits, nil
}

// History lists the user's ledger entries, newest first.
func (s *CreditService) History(ctx context.Context, userID uint, limit int) ([]models.CreditLog, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	var logs []models.CreditLog
	err := db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return logs, nil
}

func recordCredits(action string, amount int) {
	observability.RecordCredits(action, amount)
}
