package models

import (
	"time"
)

// CouponLog records one coffee coupon transfer between users,
// optionally tied to the question/feedback that earned it. Balances
// live on users.coupon_balance and are updated in the same
// transaction that writes the log row.
type CouponLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FromUserID uint      `gorm:"not null;index" json:"from_user_id"`
	FromUser   User      `gorm:"foreignKey:FromUserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"from_user"`
	ToUserID   uint      `gorm:"not null;index" json:"to_user_id"`
	ToUser     User      `gorm:"foreignKey:ToUserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"to_user"`
	QuestionID *uint     `gorm:"index" json:"question_id"`
	FeedbackID *uint     `gorm:"index" json:"feedback_id"`
	Amount     int       `gorm:"not null" json:"amount"`
	Message    string    `gorm:"size:200" json:"message"` // 감사 메시지
	CreatedAt  time.Time `json:"created_at"`
}
