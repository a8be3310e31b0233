package handlers

import (
	"careertalk/internal/middleware"
	"careertalk/internal/services"

	"github.com/gin-gonic/gin"
)

type CouponHandler struct{}

func NewCouponHandler() *CouponHandler {
	return &CouponHandler{}
}

type sendCouponRequest struct {
	ToUserID uint   `json:"to_user_id" binding:"required"`
	Amount   int    `json:"amount"`
	Message  string `json:"message"`
	Qid      string `json:"qid"`
	Fid      string `json:"fid"`
}

// Send transfers coffee coupons to another user, usually as thanks
// for a feedback. Amount defaults to one.
func (h *CouponHandler) Send(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req sendCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "받는 사용자를 입력해주세요")
		return
	}
	if req.Amount == 0 {
		req.Amount = 1
	}

	in := services.SendCouponInput{
		ToUserID: req.ToUserID,
		Amount:   req.Amount,
		Message:  req.Message,
	}
	if req.Qid != "" {
		question, err := services.GetQuestionByQid(req.Qid)
		if err != nil {
			Fail(c, err)
			return
		}
		in.QuestionID = &question.ID
	}
	if req.Fid != "" {
		feedback, err := services.GetFeedbackByFid(req.Fid)
		if err != nil {
			Fail(c, err)
			return
		}
		in.FeedbackID = &feedback.ID
	}

	log, err := services.SendCoupon(user.ID, in)
	if err != nil {
		Fail(c, err)
		return
	}

	balance, err := services.CouponBalance(user.ID)
	if err != nil {
		Fail(c, err)
		return
	}

	OK(c, gin.H{"coupon": log, "balance": balance})
}

// History lists the caller's coupon ledger plus current balance.
func (h *CouponHandler) History(c *gin.Context) {
	user := middleware.CurrentUser(c)

	logs, err := services.CouponHistory(user.ID)
	if err != nil {
		Fail(c, err)
		return
	}
	balance, err := services.CouponBalance(user.ID)
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(200, gin.H{"data": logs, "balance": balance})
}
