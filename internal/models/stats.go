package models

import (
	"time"
)

// QuestionStats is a denormalized one-row-per-question cache of the
// trailing 24h vote count. It is recomputed on every vote toggle for
// its question and never decayed by a background process, so a
// question with no new votes shows a stale (too-high) Votes24h until
// the next vote event. Callers must tolerate that.
type QuestionStats struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionID uint      `gorm:"not null;uniqueIndex" json:"question_id"`
	Question   Question  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Votes24h   int       `gorm:"column:votes_24h;not null;default:0" json:"votes_24h"`
	UpdatedAt  time.Time `json:"updated_at"`
}
