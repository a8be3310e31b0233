package handlers

import (
	"strconv"

	"careertalk/internal/services"

	"github.com/gin-gonic/gin"
)

type TrendingHandler struct{}

func NewTrendingHandler() *TrendingHandler {
	return &TrendingHandler{}
}

// List returns the trending question listing with scores attached.
// Read-only; the underlying counters are never touched here.
func (h *TrendingHandler) List(c *gin.Context) {
	limit := services.TrendingLimit
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			limit = n
		}
	}

	questions, err := services.TopQuestions(limit)
	if err != nil {
		Fail(c, err)
		return
	}
	hideAnonymousAuthors(questions)

	Data(c, questions)
}
