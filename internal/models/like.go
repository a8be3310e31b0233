package models

import (
	"time"
)

// QuestionLike is the vote's simpler sibling: separate table, own
// unique index, no time windowing and no stats row.
type QuestionLike struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index;uniqueIndex:idx_question_liker" json:"question_id"`
	Question   Question  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_question_liker" json:"user_id"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
