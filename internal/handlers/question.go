package handlers

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"careertalk/internal/db"
	"careertalk/internal/middleware"
	"careertalk/internal/models"
	"careertalk/internal/services"
	"careertalk/internal/utils"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct{}

func NewQuestionHandler() *QuestionHandler {
	return &QuestionHandler{}
}

type createQuestionRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Category  string   `json:"category"`
	Tags      []string `json:"tags"`
	Anonymous bool     `json:"anonymous"`
}

// Create posts a new question for the session user.
func (h *QuestionHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req createQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "요청 형식이 올바르지 않습니다")
		return
	}

	question, err := services.CreateQuestion(user.ID, services.CreateQuestionInput{
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		Tags:      req.Tags,
		Anonymous: req.Anonymous,
	}, utils.RandStringBytesMaskImpr(8))
	if err != nil {
		Fail(c, err)
		return
	}

	c.JSON(200, gin.H{"data": question, "error": nil})
}

type updateQuestionRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
}

// Update edits title/content/category, owner only.
func (h *QuestionHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	qid := c.Param("qid")

	var req updateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "요청 형식이 올바르지 않습니다")
		return
	}

	if _, err := services.UpdateQuestion(qid, services.UpdateQuestionInput{
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
	}, user.ID); err != nil {
		Fail(c, err)
		return
	}

	utils.GetCache().Delete(fmt.Sprintf("question:detail:%s", qid))
	services.InvalidateTrendingCache()

	OK(c, nil)
}

// Delete hard-deletes a question, owner only. Votes, likes, stats and
// feedbacks cascade at the store.
func (h *QuestionHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	qid := c.Param("qid")

	if err := services.DeleteQuestion(qid, user.ID); err != nil {
		Fail(c, err)
		return
	}

	utils.GetCache().Delete(fmt.Sprintf("question:detail:%s", qid))
	services.InvalidateTrendingCache()

	OK(c, nil)
}

// List returns the paginated question listing, newest first, with
// engagement counts attached. Category filter via ?category=.
func (h *QuestionHandler) List(c *gin.Context) {
	page := 1
	if p := c.Query("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	perPage := 20
	offset := (page - 1) * perPage

	query := db.DB.Model(&models.Question{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var total int64
	query.Count(&total)

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	var questions []models.Question
	if err := query.Preload("User").
		Order("created_at DESC").
		Limit(perPage).
		Offset(offset).
		Find(&questions).Error; err != nil {
		Fail(c, err)
		return
	}

	if err := services.FillEngagementCounts(questions); err != nil {
		Fail(c, err)
		return
	}
	hideAnonymousAuthors(questions)

	c.JSON(200, gin.H{
		"data":        questions,
		"currentPage": page,
		"totalPages":  totalPages,
		"total":       total,
	})
}

// Detail returns one question with rendered content, its feedbacks and
// engagement counts, and bumps the view counter.
func (h *QuestionHandler) Detail(c *gin.Context) {
	qid := c.Param("qid")

	question, err := services.GetQuestionByQid(qid)
	if err != nil {
		Fail(c, err)
		return
	}

	// 조회수 증가 (단조 증가만)
	services.IncrementViews(question.ID)
	question.Views++

	feedbacks, err := services.ListFeedbacks(question.ID)
	if err != nil {
		Fail(c, err)
		return
	}

	qs := []models.Question{*question}
	if err := services.FillEngagementCounts(qs); err != nil {
		Fail(c, err)
		return
	}
	hideAnonymousAuthors(qs)
	*question = qs[0]

	type feedbackView struct {
		models.Feedback
		ContentHTML string `json:"content_html"`
	}
	feedbackViews := make([]feedbackView, len(feedbacks))
	for i, f := range feedbacks {
		feedbackViews[i] = feedbackView{
			Feedback:    f,
			ContentHTML: utils.RenderMarkdown(f.Content),
		}
	}

	// 렌더링된 본문만 캐시: 조회수/카운트는 항상 실시간
	contentKey := fmt.Sprintf("question:detail:%s", qid)
	contentHTML, _ := utils.GetCache().Get(contentKey).(string)
	if contentHTML == "" {
		contentHTML = utils.RenderMarkdown(question.Content)
		utils.GetCache().Set(contentKey, contentHTML, 10*time.Minute)
	}

	c.JSON(200, gin.H{
		"data":        question,
		"contentHTML": contentHTML,
		"feedbacks":   feedbackViews,
		"tags":        utils.SplitTags(question.Tags),
		"fetchedAt":   time.Now().Format(time.RFC3339),
	})
}

// hideAnonymousAuthors blanks the author on anonymous questions before
// the payload leaves the server.
func hideAnonymousAuthors(questions []models.Question) {
	for i := range questions {
		if questions[i].Anonymous {
			questions[i].User = models.User{Username: "익명"}
			questions[i].UserID = 0
		}
	}
}
