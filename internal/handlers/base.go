package handlers

import (
	"net/http"

	"careertalk/internal/apperr"
	"careertalk/internal/logger"

	"github.com/gin-gonic/gin"
)

// OK writes the standard success envelope, merging extra fields in.
func OK(c *gin.Context, extra gin.H) {
	body := gin.H{"success": true}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Data writes a read response.
func Data(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// FailValidation is the short form for bad request payloads.
func FailValidation(c *gin.Context, message string) {
	Fail(c, apperr.Wrap(apperr.ErrValidation, "%s", message))
}

// Fail translates a taxonomy error into its status code and message.
// Store errors were already wrapped with context at the service layer;
// log them here, once, at the boundary.
func Fail(c *gin.Context, err error) {
	status := apperr.Status(err)
	if status >= http.StatusInternalServerError {
		logger.L().Errorw("request failed",
			"path", c.FullPath(),
			"method", c.Request.Method,
			"error", err,
		)
	}
	c.JSON(status, gin.H{
		"success": false,
		"message": apperr.Message(err),
	})
}
