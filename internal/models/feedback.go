package models

import (
	"time"
)

// DeletedFeedbackMarker replaces the content of a soft-deleted
// feedback. The row itself stays so answer counts and thread structure
// hold.
const DeletedFeedbackMarker = "삭제된 답변입니다."

type Feedback struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Fid        string    `gorm:"uniqueIndex;size:8;not null" json:"fid"`
	QuestionID uint      `gorm:"not null;index" json:"question_id"`
	Question   Question  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsDeleted reports whether this feedback has been soft-deleted.
func (f *Feedback) IsDeleted() bool {
	return f.Content == DeletedFeedbackMarker
}
