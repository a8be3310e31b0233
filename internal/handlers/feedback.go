package handlers

import (
	"careertalk/internal/middleware"
	"careertalk/internal/services"
	"careertalk/internal/utils"

	"github.com/gin-gonic/gin"
)

type FeedbackHandler struct{}

func NewFeedbackHandler() *FeedbackHandler {
	return &FeedbackHandler{}
}

type feedbackRequest struct {
	Content string `json:"content"`
}

// Create posts an answer on the question identified by :qid.
func (h *FeedbackHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	qid := c.Param("qid")

	question, err := services.GetQuestionByQid(qid)
	if err != nil {
		Fail(c, err)
		return
	}

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "답변 내용을 입력해주세요")
		return
	}

	feedback, err := services.CreateFeedback(question.ID, user.ID, req.Content, utils.RandStringBytesMaskImpr(8))
	if err != nil {
		Fail(c, err)
		return
	}

	services.InvalidateTrendingCache()

	c.JSON(200, gin.H{"data": feedback, "error": nil})
}

// Update edits an answer, owner only.
func (h *FeedbackHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	fid := c.Param("fid")

	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "답변 내용을 입력해주세요")
		return
	}

	if _, err := services.UpdateFeedback(fid, req.Content, user.ID); err != nil {
		Fail(c, err)
		return
	}

	OK(c, nil)
}

// Delete soft-deletes an answer, owner only. The row stays so answer
// counts hold; only the content becomes the deletion marker.
func (h *FeedbackHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	fid := c.Param("fid")

	if err := services.DeleteFeedback(fid, user.ID); err != nil {
		Fail(c, err)
		return
	}

	OK(c, nil)
}
