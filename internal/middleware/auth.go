package middleware

import (
	"net/http"

	"careertalk/internal/db"
	"careertalk/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"

// AuthRequired rejects requests with no resolved session identity.
// Runs after LoadUser, so business logic below never sees an
// anonymous request and never touches the store for one.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "로그인이 필요합니다",
			})
			return
		}
		c.Next()
	}
}

// LoadUser resolves the session identity into a *models.User on the
// context. OAuth logins and demo logins set the same session key, so
// everything downstream only ever sees one kind of identity.
func LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		if userID != nil {
			var user models.User
			result := db.DB.First(&user, userID)
			if result.Error == nil {
				c.Set(CheckUserKey, &user)
			}
		}
		c.Next()
	}
}

// CurrentUser returns the resolved user, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}
