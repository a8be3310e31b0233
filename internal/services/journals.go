package services

import (
	"errors"
	"strings"
	"time"

	"careertalk/internal/apperr"
	"careertalk/internal/db"
	"careertalk/internal/models"

	"gorm.io/gorm"
)

// JournalInput is the payload for creating/updating a journal entry.
type JournalInput struct {
	Title     string
	Content   string
	Mood      string
	EntryDate time.Time
}

// CreateJournal writes a new entry for userID.
func CreateJournal(userID uint, in JournalInput) (*models.JournalEntry, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Wrap(apperr.ErrValidation, "제목을 입력해주세요")
	}
	if in.EntryDate.IsZero() {
		in.EntryDate = time.Now()
	}

	entry := models.JournalEntry{
		UserID:    userID,
		Title:     in.Title,
		Content:   in.Content,
		Mood:      in.Mood,
		EntryDate: in.EntryDate,
	}
	if err := db.DB.Create(&entry).Error; err != nil {
		return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "create journal user=%d: %v", userID, err)
	}
	return &entry, nil
}

// ListJournals returns the caller's own entries, newest date first.
// Journals are private: there is no cross-user read path.
func ListJournals(userID uint) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	if err := db.DB.Where("user_id = ?", userID).
		Order("entry_date DESC").
		Find(&entries).Error; err != nil {
		return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "list journals user=%d: %v", userID, err)
	}
	return entries, nil
}

// UpdateJournal edits an entry, owner only.
func UpdateJournal(id uint, in JournalInput, requestingUserID uint) (*models.JournalEntry, error) {
	entry, err := getJournal(id)
	if err != nil {
		return nil, err
	}
	if err := AssertOwner(entry.UserID, requestingUserID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Wrap(apperr.ErrValidation, "제목을 입력해주세요")
	}

	entry.Title = in.Title
	entry.Content = in.Content
	entry.Mood = in.Mood
	if !in.EntryDate.IsZero() {
		entry.EntryDate = in.EntryDate
	}
	if err := db.DB.Save(entry).Error; err != nil {
		return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "update journal %d: %v", id, err)
	}
	return entry, nil
}

// DeleteJournal hard-deletes an entry, owner only.
func DeleteJournal(id uint, requestingUserID uint) error {
	entry, err := getJournal(id)
	if err != nil {
		return err
	}
	if err := AssertOwner(entry.UserID, requestingUserID); err != nil {
		return err
	}
	if err := db.DB.Unscoped().Delete(entry).Error; err != nil {
		return apperr.Wrap(apperr.ErrStoreUnavailable, "delete journal %d: %v", id, err)
	}
	return nil
}

func getJournal(id uint) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	err := db.DB.First(&entry, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.ErrNotFound, "일지를 찾을 수 없습니다")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "lookup journal %d: %v", id, err)
	}
	return &entry, nil
}
