package services

import (
	"errors"
	"strings"

	"careertalk/internal/apperr"
	"careertalk/internal/db"
	"careertalk/internal/models"
	"careertalk/internal/utils"

	"gorm.io/gorm"
)

// AssertOwner is the single authorization guard shared by every
// question/feedback/journal mutation path. Existence is checked by the
// caller first; a non-owner only ever learns "forbidden".
func AssertOwner(ownerID, requestingUserID uint) error {
	if ownerID != requestingUserID {
		return apperr.Wrap(apperr.ErrForbidden, "본인의 게시물만 수정/삭제할 수 있습니다")
	}
	return nil
}

// CreateQuestionInput is the validated payload for a new question.
type CreateQuestionInput struct {
	Title     string
	Content   string
	Category  string
	Tags      []string
	Anonymous bool
}

// CreateQuestion validates and persists a new question for authorID.
// Title and content are mandatory; an invalid category falls back to
// 기타. Status defaults to open, views to 0.
func CreateQuestion(authorID uint, in CreateQuestionInput, qid string) (*models.Question, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apperr.Wrap(apperr.ErrValidation, "제목을 입력해주세요")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, apperr.Wrap(apperr.ErrValidation, "내용을 입력해주세요")
	}
	category := in.Category
	if !models.IsValidCategory(category) {
		category = models.DefaultCategory
	}

	question := models.Question{
		Qid:       qid,
		UserID:    authorID,
		Title:     in.Title,
		Content:   in.Content,
		Category:  category,
		Anonymous: in.Anonymous,
		Status:    models.QuestionStatusOpen,
	}
	if len(in.Tags) > 0 {
		question.Tags = utils.JoinTags(in.Tags)
	}

	if err := db.DB.Create(&question).Error; err != nil {
		return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "create question: %v", err)
	}
	return &question, nil
}

// UpdateQuestionInput carries the owner-editable fields. Nil means
// "leave unchanged".
type UpdateQuestionInput struct {
	Title    *string
	Content  *string
	Category *string
}

// UpdateQuestion applies in to the question identified by qid after
// the ownership check. Author, views, status and timestamps are not
// caller-editable.
func UpdateQuestion(qid string, in UpdateQuestionInput, requestingUserID uint) (*models.Question, error) {
	question, err := GetQuestionByQid(qid)
	if err != nil {
		return nil, err
	}
	if err := AssertOwner(question.UserID, requestingUserID); err != nil {
		return nil, err
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, apperr.Wrap(apperr.ErrValidation, "제목을 입력해주세요")
		}
		question.Title = *in.Title
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, apperr.Wrap(apperr.ErrValidation, "내용을 입력해주세요")
		}
		question.Content = *in.Content
	}
	if in.Category != nil {
		if !models.IsValidCategory(*in.Category) {
			return nil, apperr.Wrap(apperr.ErrValidation, "유효하지 않은 카테고리입니다")
		}
		question.Category = *in.Category
	}

	if err := db.DB.Save(question).Error; err != nil {
		return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "update question %s: %v", qid, err)
	}
	return question, nil
}

// DeleteQuestion hard-deletes the question. Dependent votes, likes,
// stats and feedbacks go with it via FK cascade at the store.
func DeleteQuestion(qid string, requestingUserID uint) error {
	question, err := GetQuestionByQid(qid)
	if err != nil {
		return err
	}
	if err := AssertOwner(question.UserID, requestingUserID); err != nil {
		return err
	}

	if err := db.DB.Unscoped().Delete(question).Error; err != nil {
		return apperr.Wrap(apperr.ErrStoreUnavailable, "delete question %s: %v", qid, err)
	}
	return nil
}

// GetQuestionByQid loads a question by its public key.
func GetQuestionByQid(qid string) (*models.Question, error) {
	var question models.Question
	err := db.DB.Preload("User").Where("qid = ?", qid).First(&question).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.ErrNotFound, "질문을 찾을 수 없습니다")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "lookup question %s: %v", qid, err)
	}
	return &question, nil
}

// IncrementViews bumps the view counter. Counter only moves up.
func IncrementViews(questionID uint) {
	db.DB.Model(&models.Question{}).
		Where("id = ?", questionID).
		UpdateColumn("views", gorm.Expr("views + 1"))
}
