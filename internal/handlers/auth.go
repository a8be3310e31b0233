package handlers

import (
	"errors"
	"fmt"
	"strings"

	"careertalk/internal/apperr"
	"careertalk/internal/db"
	"careertalk/internal/middleware"
	"careertalk/internal/models"
	"careertalk/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// createUser persists a new account. Shared by signup, OAuth and demo
// paths.
func (h *AuthHandler) createUser(username, email, password, provider, providerID string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Username:      username,
		Email:         email,
		Password:      hash,
		Provider:      provider,
		ProviderID:    providerID,
		CouponBalance: 3, // 웰컴 커피쿠폰
	}

	if err := db.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func setSessionUser(c *gin.Context, userID uint) error {
	session := sessions.Default(c)
	session.Set("user_id", userID)
	return session.Save()
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup registers a local email/password account. The username
// defaults to the email's local part, like the rest of the product.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "이메일과 비밀번호를 입력해주세요")
		return
	}

	parts := strings.Split(req.Email, "@")
	if len(parts) != 2 || parts[0] == "" {
		FailValidation(c, "이메일 형식이 올바르지 않습니다")
		return
	}
	if len(req.Password) < 6 {
		FailValidation(c, "비밀번호는 6자 이상이어야 합니다")
		return
	}

	user, err := h.createUser(parts[0], req.Email, req.Password, models.ProviderLocal, "")
	if err != nil {
		// uniqueIndex on email
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(409, gin.H{"success": false, "message": "이미 가입된 이메일입니다"})
			return
		}
		Fail(c, apperr.Wrap(apperr.ErrStoreUnavailable, "signup %s: %v", req.Email, err))
		return
	}

	if err := setSessionUser(c, user.ID); err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"user": user})
}

// Login authenticates a local account.
func (h *AuthHandler) Login(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "이메일과 비밀번호를 입력해주세요")
		return
	}

	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		c.JSON(401, gin.H{"success": false, "message": "이메일 또는 비밀번호가 올바르지 않습니다"})
		return
	}
	if !utils.CheckPassword(user.Password, req.Password) {
		c.JSON(401, gin.H{"success": false, "message": "이메일 또는 비밀번호가 올바르지 않습니다"})
		return
	}

	if err := setSessionUser(c, user.ID); err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"user": user})
}

// Logout clears the session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	OK(c, nil)
}

// DemoLogin signs the caller in as a shared demo identity. This is the
// server-side replacement for the old client-local mock identity: it
// sets the exact same session the OAuth path sets, so no business
// logic ever special-cases demo users.
func (h *AuthHandler) DemoLogin(c *gin.Context) {
	const demoEmail = "demo@careertalk.app"

	var user models.User
	err := db.DB.Where("email = ?", demoEmail).First(&user).Error
	if err != nil {
		created, cerr := h.createUser("체험하기", demoEmail, utils.RandStringBytesMaskImpr(16), models.ProviderDemo, "")
		if cerr != nil {
			Fail(c, fmt.Errorf("create demo user: %w", cerr))
			return
		}
		user = *created
	}

	if err := setSessionUser(c, user.ID); err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"user": user})
}

// Me returns the session user.
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(401, gin.H{"success": false, "message": "로그인이 필요합니다"})
		return
	}
	Data(c, user)
}
