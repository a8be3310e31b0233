package models

import (
	"time"
)

// QuestionVote is one user's endorsement of one question. The
// composite unique index is the load-bearing invariant: at most one
// row per (question, user), enforced by the store even when two toggle
// requests race.
type QuestionVote struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;index;uniqueIndex:idx_question_voter" json:"question_id"`
	Question   Question  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID     uint      `gorm:"not null;index;uniqueIndex:idx_question_voter" json:"user_id"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
