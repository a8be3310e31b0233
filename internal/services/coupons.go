package services

import (
	"errors"

	"careertalk/internal/apperr"
	"careertalk/internal/db"
	"careertalk/internal/models"

	"gorm.io/gorm"
)

// SendCouponInput describes one coffee coupon transfer.
type SendCouponInput struct {
	ToUserID   uint
	Amount     int
	Message    string
	QuestionID *uint
	FeedbackID *uint
}

// SendCoupon moves coupons from one user to another in a single
// transaction: ledger row plus both balance updates commit together,
// so the sender balance can never go negative and the ledger never
// disagrees with the balances.
func SendCoupon(fromUserID uint, in SendCouponInput) (*models.CouponLog, error) {
	if in.Amount <= 0 {
		return nil, apperr.Wrap(apperr.ErrValidation, "쿠폰 수량은 1장 이상이어야 합니다")
	}
	if fromUserID == in.ToUserID {
		return nil, apperr.Wrap(apperr.ErrValidation, "자신에게는 쿠폰을 보낼 수 없습니다")
	}

	log := models.CouponLog{
		FromUserID: fromUserID,
		ToUserID:   in.ToUserID,
		Amount:     in.Amount,
		Message:    in.Message,
		QuestionID: in.QuestionID,
		FeedbackID: in.FeedbackID,
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var sender models.User
		if err := tx.First(&sender, fromUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Wrap(apperr.ErrNotFound, "사용자를 찾을 수 없습니다")
			}
			return err
		}

		var receiver models.User
		if err := tx.First(&receiver, in.ToUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Wrap(apperr.ErrNotFound, "받는 사용자를 찾을 수 없습니다")
			}
			return err
		}

		if err := tx.Create(&log).Error; err != nil {
			return err
		}

		// The balance guard lives in the UPDATE itself: a plain
		// read-then-decrement would let two concurrent sends both pass
		// under read committed and push the balance negative.
		res := tx.Model(&models.User{}).
			Where("id = ? AND coupon_balance >= ?", fromUserID, in.Amount).
			UpdateColumn("coupon_balance", gorm.Expr("coupon_balance - ?", in.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.Wrap(apperr.ErrValidation, "보유한 커피쿠폰이 부족합니다")
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", in.ToUserID).
			UpdateColumn("coupon_balance", gorm.Expr("coupon_balance + ?", in.Amount)).
			Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if apperr.Status(err) != 500 {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "send coupon from=%d to=%d: %v", fromUserID, in.ToUserID, err)
	}
	return &log, nil
}

// CouponBalance returns a user's current balance.
func CouponBalance(userID uint) (int, error) {
	var user models.User
	err := db.DB.Select("coupon_balance").First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperr.Wrap(apperr.ErrNotFound, "사용자를 찾을 수 없습니다")
	}
	if err != nil {
		return 0, apperr.Wrap(apperr.ErrStoreUnavailable, "lookup balance user=%d: %v", userID, err)
	}
	return user.CouponBalance, nil
}

// CouponHistory lists a user's sent and received coupons, newest
// first.
func CouponHistory(userID uint) ([]models.CouponLog, error) {
	var logs []models.CouponLog
	if err := db.DB.Preload("FromUser").Preload("ToUser").
		Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Order("created_at DESC").
		Limit(100).
		Find(&logs).Error; err != nil {
		return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "coupon history user=%d: %v", userID, err)
	}
	return logs, nil
}
