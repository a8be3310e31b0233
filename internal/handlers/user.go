package handlers

import (
	"errors"

	"careertalk/internal/apperr"
	"careertalk/internal/db"
	"careertalk/internal/middleware"
	"careertalk/internal/models"
	"careertalk/internal/services"
	"careertalk/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile returns a public user profile with their recent questions.
func (h *UserHandler) Profile(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var user models.User
	err := db.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		Fail(c, apperr.Wrap(apperr.ErrNotFound, "사용자를 찾을 수 없습니다"))
		return
	}
	if err != nil {
		Fail(c, apperr.Wrap(apperr.ErrStoreUnavailable, "lookup user %d: %v", id, err))
		return
	}

	var questions []models.Question
	if err := db.DB.Where("user_id = ? AND anonymous = ?", id, false).
		Order("created_at DESC").
		Limit(20).
		Find(&questions).Error; err != nil {
		Fail(c, apperr.Wrap(apperr.ErrStoreUnavailable, "list user questions %d: %v", id, err))
		return
	}
	if err := services.FillEngagementCounts(questions); err != nil {
		Fail(c, err)
		return
	}

	c.JSON(200, gin.H{
		"data":      user,
		"questions": questions,
	})
}

type updateProfileRequest struct {
	Username string `json:"username"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
	IsMentor *bool  `json:"is_mentor"`
}

// UpdateProfile edits the caller's own profile fields.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "요청 형식이 올바르지 않습니다")
		return
	}

	updates := map[string]interface{}{}
	if req.Username != "" {
		updates["username"] = req.Username
	}
	if req.Bio != "" {
		updates["bio"] = req.Bio
	}
	if req.Avatar != "" {
		updates["avatar"] = req.Avatar
	}
	if req.IsMentor != nil {
		updates["is_mentor"] = *req.IsMentor
	}
	if len(updates) == 0 {
		OK(c, nil)
		return
	}

	if err := db.DB.Model(user).Updates(updates).Error; err != nil {
		Fail(c, apperr.Wrap(apperr.ErrStoreUnavailable, "update profile user=%d: %v", user.ID, err))
		return
	}
	OK(c, gin.H{"user": user})
}
