package models

import (
	"time"
)

// JournalEntry is a private career journal note. Only its owner can
// read or mutate it.
type JournalEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Title     string    `gorm:"not null" json:"title"`
	Content   string    `gorm:"type:text" json:"content"`
	Mood      string    `gorm:"size:20" json:"mood"` // 이모지 한 개
	EntryDate time.Time `gorm:"index" json:"entry_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
