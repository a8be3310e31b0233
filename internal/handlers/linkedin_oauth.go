package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"careertalk/internal/config"
	"careertalk/internal/db"
	"careertalk/internal/models"
	"careertalk/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/linkedin"
)

var linkedinOauthConfig *oauth2.Config

// InitLinkedInOAuth wires the OAuth config from the environment.
func InitLinkedInOAuth() {
	cfg := config.Get()
	linkedinOauthConfig = &oauth2.Config{
		ClientID:     cfg.LinkedInClientID,
		ClientSecret: cfg.LinkedInClientSecret,
		RedirectURL:  cfg.SiteURL + "/auth/linkedin/callback",
		Scopes:       []string{"openid", "profile", "email"},
		Endpoint:     linkedin.Endpoint,
	}
}

// linkedinUserInfo is the OpenID Connect userinfo payload.
type linkedinUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	Picture       string `json:"picture"`
}

func generateStateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// LinkedInLogin starts the OAuth flow.
func (h *AuthHandler) LinkedInLogin(c *gin.Context) {
	state, err := generateStateToken()
	if err != nil {
		Fail(c, err)
		return
	}

	// state는 세션에 저장, 콜백에서 검증
	session := sessions.Default(c)
	session.Set("oauth_state", state)
	if err := session.Save(); err != nil {
		Fail(c, err)
		return
	}

	url := linkedinOauthConfig.AuthCodeURL(state)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// LinkedInCallback handles the provider redirect: verify state,
// exchange the code, fetch userinfo, then find-or-create the account
// and set the same session every other login path sets.
func (h *AuthHandler) LinkedInCallback(c *gin.Context) {
	session := sessions.Default(c)
	savedState := session.Get("oauth_state")

	if savedState == nil || c.Query("state") != savedState.(string) {
		FailValidation(c, "잘못된 state 파라미터입니다")
		return
	}
	session.Delete("oauth_state")
	_ = session.Save()

	code := c.Query("code")
	if code == "" {
		FailValidation(c, "인증 코드를 받지 못했습니다")
		return
	}

	token, err := linkedinOauthConfig.Exchange(context.Background(), code)
	if err != nil {
		Fail(c, fmt.Errorf("linkedin token exchange: %w", err))
		return
	}

	userInfo, err := h.getLinkedInUserInfo(c.Request.Context(), token.AccessToken)
	if err != nil {
		Fail(c, fmt.Errorf("linkedin userinfo: %w", err))
		return
	}

	var user models.User
	err = db.DB.Where("provider_id = ? AND provider = ?", userInfo.Sub, models.ProviderLinkedIn).
		Or("email = ?", userInfo.Email).
		First(&user).Error
	if err != nil {
		username := userInfo.GivenName
		if username == "" {
			username = strings.Split(userInfo.Email, "@")[0]
		}
		created, cerr := h.createUser(username, userInfo.Email, utils.RandStringBytesMaskImpr(16), models.ProviderLinkedIn, userInfo.Sub)
		if cerr != nil {
			Fail(c, fmt.Errorf("create linkedin user: %w", cerr))
			return
		}
		user = *created
	} else if user.ProviderID == "" {
		// 기존 로컬 계정에 LinkedIn 연결
		db.DB.Model(&user).Updates(map[string]interface{}{
			"provider":    models.ProviderLinkedIn,
			"provider_id": userInfo.Sub,
		})
	}

	if err := setSessionUser(c, user.ID); err != nil {
		Fail(c, err)
		return
	}

	c.Redirect(http.StatusFound, config.Get().FrontendOrigin)
}

func (h *AuthHandler) getLinkedInUserInfo(ctx context.Context, accessToken string) (*linkedinUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://api.linkedin.com/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("userinfo status %d: %s", resp.StatusCode, body)
	}

	var info linkedinUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return &info, nil
}
