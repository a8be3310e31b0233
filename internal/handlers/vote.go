package handlers

import (
	"careertalk/internal/middleware"
	"careertalk/internal/services"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

type voteRequest struct {
	Qid string `json:"qid" binding:"required"`
}

// Toggle flips the caller's vote on a question and returns the fresh
// aggregates. Not idempotent: each call flips state.
func (h *VoteHandler) Toggle(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "qid를 입력해주세요")
		return
	}

	question, err := services.GetQuestionByQid(req.Qid)
	if err != nil {
		Fail(c, err)
		return
	}

	result, err := services.ToggleVote(question.ID, user.ID)
	if err != nil {
		Fail(c, err)
		return
	}

	services.InvalidateTrendingCache()

	OK(c, gin.H{
		"isVoted":   result.IsVoted,
		"voteCount": result.VoteCount,
		"votes24h":  result.Votes24h,
	})
}
