package handlers

import (
	"time"

	"careertalk/internal/middleware"
	"careertalk/internal/services"
	"careertalk/internal/utils"

	"github.com/gin-gonic/gin"
)

type JournalHandler struct{}

func NewJournalHandler() *JournalHandler {
	return &JournalHandler{}
}

type journalRequest struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Mood      string `json:"mood"`
	EntryDate string `json:"entry_date"` // YYYY-MM-DD
}

func (r *journalRequest) toInput() services.JournalInput {
	in := services.JournalInput{
		Title:   r.Title,
		Content: r.Content,
		Mood:    r.Mood,
	}
	if r.EntryDate != "" {
		if t, err := time.Parse("2006-01-02", r.EntryDate); err == nil {
			in.EntryDate = t
		}
	}
	return in
}

// List returns the caller's own journal entries.
func (h *JournalHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)

	entries, err := services.ListJournals(user.ID)
	if err != nil {
		Fail(c, err)
		return
	}
	Data(c, entries)
}

// Create writes a new journal entry.
func (h *JournalHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "요청 형식이 올바르지 않습니다")
		return
	}

	entry, err := services.CreateJournal(user.ID, req.toInput())
	if err != nil {
		Fail(c, err)
		return
	}
	c.JSON(200, gin.H{"data": entry, "error": nil})
}

// Update edits an entry, owner only.
func (h *JournalHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var req journalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		FailValidation(c, "요청 형식이 올바르지 않습니다")
		return
	}

	if _, err := services.UpdateJournal(id, req.toInput(), user.ID); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}

// Delete removes an entry, owner only.
func (h *JournalHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	if err := services.DeleteJournal(id, user.ID); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}
