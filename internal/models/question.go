package models

import (
	"time"
)

// Question lifecycle status. No reopen path is modeled: a question is
// open until it is hard-deleted.
const QuestionStatusOpen = "open"

// Built-in categories. 기타 is the catch-all default.
var QuestionCategories = []string{"이직", "면접", "연봉", "커리어", "기타"}

const DefaultCategory = "기타"

type Question struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Qid       string    `gorm:"uniqueIndex;size:8;not null" json:"qid"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Category  string    `gorm:"size:20;not null;default:'기타'" json:"category"`
	Tags      string    `gorm:"size:255" json:"tags"` // comma separated
	Anonymous bool      `gorm:"default:false" json:"anonymous"`
	Views     int       `gorm:"default:0" json:"views"` // only ever increases
	Status    string    `gorm:"size:20;not null;default:'open'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 비영속 필드, 목록 조회 시 채워짐
	FeedbackCount int     `gorm:"-" json:"feedback_count"`
	VoteCount     int     `gorm:"-" json:"vote_count"`
	LikeCount     int     `gorm:"-" json:"like_count"`
	Votes24h      int     `gorm:"-" json:"votes_24h"`
	TrendingScore float64 `gorm:"-" json:"trending_score,omitempty"`
}

// IsValidCategory reports whether c is one of the built-in categories.
func IsValidCategory(c string) bool {
	for _, v := range QuestionCategories {
		if v == c {
			return true
		}
	}
	return false
}
