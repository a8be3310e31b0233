package services

import (
	"errors"
	"strings"

	"careertalk/internal/apperr"
	"careertalk/internal/db"
	"careertalk/internal/models"

	"gorm.io/gorm"
)

// CreateFeedback posts an answer on a question.
func CreateFeedback(questionID, authorID uint, content, fid string) (*models.Feedback, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Wrap(apperr.ErrValidation, "답변 내용을 입력해주세요")
	}
	if err := ensureQuestionExists(questionID); err != nil {
		return nil, err
	}

	feedback := models.Feedback{
		Fid:        fid,
		QuestionID: questionID,
		UserID:     authorID,
		Content:    content,
	}
	if err := db.DB.Create(&feedback).Error; err != nil {
		return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "create feedback question=%d: %v", questionID, err)
	}
	return &feedback, nil
}

// UpdateFeedback edits the content, owner only. A soft-deleted
// feedback cannot be edited back to life.
func UpdateFeedback(fid string, content string, requestingUserID uint) (*models.Feedback, error) {
	feedback, err := GetFeedbackByFid(fid)
	if err != nil {
		return nil, err
	}
	if err := AssertOwner(feedback.UserID, requestingUserID); err != nil {
		return nil, err
	}
	if feedback.IsDeleted() {
		return nil, apperr.Wrap(apperr.ErrValidation, "삭제된 답변은 수정할 수 없습니다")
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperr.Wrap(apperr.ErrValidation, "답변 내용을 입력해주세요")
	}

	feedback.Content = content
	if err := db.DB.Save(feedback).Error; err != nil {
		return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "update feedback %s: %v", fid, err)
	}
	return feedback, nil
}

// DeleteFeedback soft-deletes: the content becomes the fixed marker
// but the row stays, so answer counts and thread structure referencing
// it do not drop.
func DeleteFeedback(fid string, requestingUserID uint) error {
	feedback, err := GetFeedbackByFid(fid)
	if err != nil {
		return err
	}
	if err := AssertOwner(feedback.UserID, requestingUserID); err != nil {
		return err
	}

	feedback.Content = models.DeletedFeedbackMarker
	if err := db.DB.Save(feedback).Error; err != nil {
		return apperr.Wrap(apperr.ErrStoreUnavailable, "soft delete feedback %s: %v", fid, err)
	}
	return nil
}

// ListFeedbacks returns a question's answers oldest-first, authors
// preloaded.
func ListFeedbacks(questionID uint) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	if err := db.DB.Preload("User").
		Where("question_id = ?", questionID).
		Order("created_at ASC").
		Find(&feedbacks).Error; err != nil {
		return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "list feedbacks question=%d: %v", questionID, err)
	}
	return feedbacks, nil
}

// GetFeedbackByFid loads a feedback by its public key.
func GetFeedbackByFid(fid string) (*models.Feedback, error) {
	var feedback models.Feedback
	err := db.DB.Where("fid = ?", fid).First(&feedback).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.ErrNotFound, "답변을 찾을 수 없습니다")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "lookup feedback %s: %v", fid, err)
	}
	return &feedback, nil
}
