package services

import (
	"fmt"
	"testing"
	"time"

	"careertalk/internal/db"
	"careertalk/internal/models"
)

func TestTrendingScoreProperties(t *testing.T) {
	cfg := DefaultTrendingConfig

	if got := TrendingScore(0, 0, 0, 0, cfg); got != 0 {
		t.Errorf("all-zero score: got %f, want 0", got)
	}

	// Never negative, whatever the inputs.
	if got := TrendingScore(0, 0, 0, 0, TrendingConfig{WeightVotes24h: -5}); got < 0 {
		t.Errorf("score went negative: %f", got)
	}

	// More recent votes means a higher score, other inputs equal.
	low := TrendingScore(100, 1, 2, 3, cfg)
	high := TrendingScore(100, 5, 2, 3, cfg)
	if high <= low {
		t.Errorf("score not increasing in votes24h: %f <= %f", high, low)
	}

	// Pure function: same inputs, same output.
	if TrendingScore(7, 3, 2, 1, cfg) != TrendingScore(7, 3, 2, 1, cfg) {
		t.Error("score is not deterministic")
	}
}

func TestTopQuestionsOrdering(t *testing.T) {
	setupTestDB(t)
	a := createUser(t, "a@test.com")
	voter := createUser(t, "v@test.com")

	quiet := createQuestion(t, a.ID, "q1aaaaaa")
	hot := createQuestion(t, a.ID, "q2aaaaaa")

	// Engagement on "hot" only.
	if _, err := ToggleVote(hot.ID, voter.ID); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if _, err := ToggleLike(hot.ID, voter.ID, LikeActionLike); err != nil {
		t.Fatalf("like: %v", err)
	}

	InvalidateTrendingCache()
	top, err := TopQuestions(10)
	if err != nil {
		t.Fatalf("TopQuestions: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("got %d questions, want 2", len(top))
	}
	if top[0].ID != hot.ID {
		t.Errorf("hot question not first: got id=%d", top[0].ID)
	}
	if top[0].TrendingScore <= top[1].TrendingScore {
		t.Errorf("scores not descending: %f <= %f", top[0].TrendingScore, top[1].TrendingScore)
	}
	if top[0].VoteCount != 1 || top[0].LikeCount != 1 {
		t.Errorf("counts not filled: votes=%d likes=%d", top[0].VoteCount, top[0].LikeCount)
	}
	if quiet.ID != top[1].ID {
		t.Errorf("quiet question missing from listing")
	}
}

func TestTopQuestionsTieBreakNewerFirst(t *testing.T) {
	setupTestDB(t)
	a := createUser(t, "a@test.com")

	older := models.Question{
		Qid: "q1aaaaaa", UserID: a.ID, Title: "t", Content: "c",
		Status: models.QuestionStatusOpen, CreatedAt: time.Now().Add(-2 * time.Hour),
	}
	newer := models.Question{
		Qid: "q2aaaaaa", UserID: a.ID, Title: "t", Content: "c",
		Status: models.QuestionStatusOpen, CreatedAt: time.Now().Add(-1 * time.Hour),
	}
	if err := db.DB.Create(&older).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.DB.Create(&newer).Error; err != nil {
		t.Fatal(err)
	}

	InvalidateTrendingCache()
	top, err := TopQuestions(10)
	if err != nil {
		t.Fatalf("TopQuestions: %v", err)
	}
	// Equal (zero) engagement: the newer question wins the tie.
	if top[0].ID != newer.ID {
		t.Errorf("tie-break: got id=%d first, want newer id=%d", top[0].ID, newer.ID)
	}
}

func TestTopQuestionsReadOnly(t *testing.T) {
	setupTestDB(t)
	a := createUser(t, "a@test.com")
	q := createQuestion(t, a.ID, "q1aaaaaa")

	InvalidateTrendingCache()
	if _, err := TopQuestions(10); err != nil {
		t.Fatalf("TopQuestions: %v", err)
	}

	stored, err := GetQuestionByQid(q.Qid)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.Views != 0 {
		t.Errorf("trending listing mutated views: %d", stored.Views)
	}
}

func TestTopQuestionsCap(t *testing.T) {
	setupTestDB(t)
	a := createUser(t, "a@test.com")

	for i := 0; i < TrendingLimit+5; i++ {
		q := models.Question{
			Qid:    "qk" + string(rune('a'+i%26)) + string(rune('a'+i/26)) + "aaaa",
			UserID: a.ID, Title: "t", Content: "c", Status: models.QuestionStatusOpen,
		}
		if err := db.DB.Create(&q).Error; err != nil {
			t.Fatal(err)
		}
	}

	InvalidateTrendingCache()
	top, err := TopQuestions(1000)
	if err != nil {
		t.Fatalf("TopQuestions: %v", err)
	}
	if len(top) > TrendingLimit {
		t.Errorf("listing not capped: got %d, cap %d", len(top), TrendingLimit)
	}
}

func TestTopQuestionsCallersOwnTheirElements(t *testing.T) {
	setupTestDB(t)
	a := createUser(t, "a@test.com")
	createQuestion(t, a.ID, "q1aaaaaa")

	first, err := TopQuestions(10)
	if err != nil || len(first) != 1 {
		t.Fatalf("TopQuestions: %v (%d entries)", err, len(first))
	}

	// Handlers rewrite anonymous authors on the returned slice. That
	// must never leak into what the next (cached) call hands out.
	first[0].User = models.User{Username: "익명"}
	first[0].UserID = 0

	second, err := TopQuestions(10)
	if err != nil {
		t.Fatalf("TopQuestions cached: %v", err)
	}
	if second[0].UserID != a.ID || second[0].User.Username != a.Username {
		t.Errorf("cached listing carries a caller's mutation: user=%d %q",
			second[0].UserID, second[0].User.Username)
	}
}

func TestTopQuestionsOldQuestionWithFreshVotes(t *testing.T) {
	setupTestDB(t)
	a := createUser(t, "a@test.com")

	old := models.Question{
		Qid: "oldqqqqq", UserID: a.ID, Title: "옛날 질문", Content: "c",
		Status:    models.QuestionStatusOpen,
		CreatedAt: time.Now().Add(-300 * time.Hour),
	}
	if err := db.DB.Create(&old).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.DB.Create(&models.QuestionStats{QuestionID: old.ID, Votes24h: 30}).Error; err != nil {
		t.Fatal(err)
	}

	// Bury it under far more new questions than one candidate window.
	for i := 0; i < trendingCandidateWindow+5; i++ {
		q := models.Question{
			Qid:    fmt.Sprintf("qn%06d", i),
			UserID: a.ID, Title: "t", Content: "c", Status: models.QuestionStatusOpen,
		}
		if err := db.DB.Create(&q).Error; err != nil {
			t.Fatal(err)
		}
	}

	top, err := TopQuestions(TrendingLimit)
	if err != nil {
		t.Fatalf("TopQuestions: %v", err)
	}
	if len(top) == 0 || top[0].Qid != old.Qid {
		t.Errorf("old question with fresh votes missing from the top of trending")
	}
}
