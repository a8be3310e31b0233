package handlers

import (
	"careertalk/internal/middleware"
	"careertalk/internal/services"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct{}

func NewLikeHandler() *LikeHandler {
	return &LikeHandler{}
}

type likeRequest struct {
	Qid    string `json:"qid" binding:"required"`
	Action string `json:"action" binding:"required"` // like | unlike
}

// Toggle applies the client-specified like/unlike. A redundant like
// under a race comes back as 409 so the client can treat it as a
// no-op instead of an error state.
func (h *LikeHandler) Toggle(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "qid와 action을 입력해주세요")
		return
	}

	question, err := services.GetQuestionByQid(req.Qid)
	if err != nil {
		Fail(c, err)
		return
	}

	result, err := services.ToggleLike(question.ID, user.ID, req.Action)
	if err != nil {
		Fail(c, err)
		return
	}

	services.InvalidateTrendingCache()

	OK(c, gin.H{"likeCount": result.LikeCount, "isLiked": result.IsLiked})
}

// Status returns the like count for a question and, for a logged-in
// caller, whether they liked it. Public; used for initial page render.
func (h *LikeHandler) Status(c *gin.Context) {
	qid := c.Query("qid")
	if qid == "" {
		FailValidation(c, "qid를 입력해주세요")
		return
	}

	question, err := services.GetQuestionByQid(qid)
	if err != nil {
		Fail(c, err)
		return
	}

	userID := uint(0)
	if user := middleware.CurrentUser(c); user != nil {
		userID = user.ID
	}

	result, err := services.LikeStatus(question.ID, userID)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{"likeCount": result.LikeCount, "isLiked": result.IsLiked})
}
