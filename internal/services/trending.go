package services

import (
	"math"
	"sort"
	"time"

	"careertalk/internal/apperr"
	"careertalk/internal/db"
	"careertalk/internal/models"
	"careertalk/internal/utils"
)

// TrendingConfig weights the engagement signals that make up a
// question's trending score.
type TrendingConfig struct {
	WeightVotes24h float64 // 핵심 신호: 최근 24시간 투표
	WeightLike     float64
	WeightFeedback float64
	WeightView     float64 // applied to log10(views+1), raw views would swamp the rest
}

var DefaultTrendingConfig = TrendingConfig{
	WeightVotes24h: 4.0,
	WeightLike:     2.0,
	WeightFeedback: 1.5,
	WeightView:     1.0,
}

// TrendingLimit caps the trending listing.
const TrendingLimit = 20

// trendingCandidateWindow bounds how many questions are scored per
// listing: the most recently created ones plus the ones with the
// highest 24h vote snapshot. An old question with fresh votes stays a
// candidate; old questions with no recent engagement cannot rank.
const trendingCandidateWindow = 200

// TrendingScore combines lifetime views, the (possibly stale) 24h vote
// snapshot, feedback count and like count into one scalar. Pure
// function of its inputs; never negative.
func TrendingScore(views, votes24h, feedbacks, likes int, cfg TrendingConfig) float64 {
	score := float64(votes24h)*cfg.WeightVotes24h +
		float64(likes)*cfg.WeightLike +
		float64(feedbacks)*cfg.WeightFeedback +
		math.Log10(float64(views)+1)*cfg.WeightView

	if score < 0 {
		return 0
	}
	return score
}

// TopQuestions returns the trending listing: up to limit questions
// ordered by score, ties broken by creation time (newer first).
// Read-only: it never touches the underlying counters, and the 24h
// vote snapshot is taken from question_stats as-is; staleness there
// is accepted policy, not something this path repairs.
func TopQuestions(limit int) ([]models.Question, error) {
	if limit <= 0 || limit > TrendingLimit {
		limit = TrendingLimit
	}

	cacheKey := "question:trending"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if qs, ok := cached.([]models.Question); ok {
			return copyQuestions(qs, limit), nil
		}
	}

	ids, err := trendingCandidateIDs()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Question{}, nil
	}

	var questions []models.Question
	if err := db.DB.Preload("User").
		Where("id IN ?", ids).
		Find(&questions).Error; err != nil {
		return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "load trending candidates: %v", err)
	}

	if err := FillEngagementCounts(questions); err != nil {
		return nil, err
	}

	for i := range questions {
		q := &questions[i]
		q.TrendingScore = TrendingScore(q.Views, q.Votes24h, q.FeedbackCount, q.LikeCount, DefaultTrendingConfig)
	}

	sort.SliceStable(questions, func(i, j int) bool {
		if questions[i].TrendingScore != questions[j].TrendingScore {
			return questions[i].TrendingScore > questions[j].TrendingScore
		}
		return questions[i].CreatedAt.After(questions[j].CreatedAt)
	})

	if len(questions) > TrendingLimit {
		questions = questions[:TrendingLimit]
	}

	utils.GetCache().Set(cacheKey, questions, 1*time.Minute)

	return copyQuestions(questions, limit), nil
}

// trendingCandidateIDs unions the newest questions with the questions
// carrying the highest 24h vote snapshots, one window each.
func trendingCandidateIDs() ([]uint, error) {
	var recent []uint
	if err := db.DB.Model(&models.Question{}).
		Order("created_at DESC").
		Limit(trendingCandidateWindow).
		Pluck("id", &recent).Error; err != nil {
		return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "recent candidates: %v", err)
	}

	var engaged []uint
	if err := db.DB.Model(&models.QuestionStats{}).
		Where("votes_24h > 0").
		Order("votes_24h DESC").
		Limit(trendingCandidateWindow).
		Pluck("question_id", &engaged).Error; err != nil {
		return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "engaged candidates: %v", err)
	}

	seen := make(map[uint]struct{}, len(recent)+len(engaged))
	ids := make([]uint, 0, len(recent)+len(engaged))
	for _, id := range append(recent, engaged...) {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}

// copyQuestions hands callers their own elements. The cached slice is
// shared across requests and handlers rewrite anonymous authors in
// place, so returning the backing array directly is a data race.
func copyQuestions(qs []models.Question, limit int) []models.Question {
	if len(qs) > limit {
		qs = qs[:limit]
	}
	out := make([]models.Question, len(qs))
	copy(out, qs)
	return out
}

// FillEngagementCounts batch-fills the derived counters on a slice of
// questions: feedback count, vote count, like count and the cached
// votes_24h snapshot. One grouped query per table instead of N.
func FillEngagementCounts(questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}

	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}

	type countRow struct {
		QuestionID uint
		Count      int
	}

	grouped := func(model interface{}) (map[uint]int, error) {
		var rows []countRow
		if err := db.DB.Model(model).
			Select("question_id, COUNT(*) as count").
			Where("question_id IN ?", ids).
			Group("question_id").
			Scan(&rows).Error; err != nil {
			return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "grouped count: %v", err)
		}
		m := make(map[uint]int, len(rows))
		for _, r := range rows {
			m[r.QuestionID] = r.Count
		}
		return m, nil
	}

	feedbacks, err := grouped(&models.Feedback{})
	if err != nil {
		return err
	}
	votes, err := grouped(&models.QuestionVote{})
	if err != nil {
		return err
	}
	likes, err := grouped(&models.QuestionLike{})
	if err != nil {
		return err
	}

	var stats []models.QuestionStats
	if err := db.DB.Where("question_id IN ?", ids).Find(&stats).Error; err != nil {
		return apperr.Wrap(apperr.ErrStoreUnavailable, "load question_stats: %v", err)
	}
	statsMap := make(map[uint]int, len(stats))
	for _, s := range stats {
		statsMap[s.QuestionID] = s.Votes24h
	}

	for i := range questions {
		id := questions[i].ID
		questions[i].FeedbackCount = feedbacks[id]
		questions[i].VoteCount = votes[id]
		questions[i].LikeCount = likes[id]
		questions[i].Votes24h = statsMap[id]
	}
	return nil
}

// InvalidateTrendingCache drops the cached listing; called after
// mutations that should show up promptly.
func InvalidateTrendingCache() {
	utils.GetCache().Delete("question:trending")
}
