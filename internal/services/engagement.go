package services

import (
	"errors"
	"time"

	"careertalk/internal/apperr"
	"careertalk/internal/db"
	"careertalk/internal/logger"
	"careertalk/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Like actions the client sends. The client tracks its own prior
// state, so a redundant "like" can arrive under a race; the unique
// index turns it into ErrConflict and the caller treats it as a no-op.
const (
	LikeActionLike   = "like"
	LikeActionUnlike = "unlike"
)

// VoteResult is what a vote toggle returns for display.
type VoteResult struct {
	IsVoted   bool  `json:"isVoted"`
	VoteCount int64 `json:"voteCount"`
	Votes24h  int64 `json:"votes24h"`
}

// LikeResult is what a like toggle/status query returns.
type LikeResult struct {
	LikeCount int64 `json:"likeCount"`
	IsLiked   bool  `json:"isLiked"`
}

// ToggleVote flips userID's vote on questionID: insert-if-absent,
// delete-if-present. Counts are recomputed from the vote table, never
// decremented, and the 24h snapshot is pushed into question_stats
// best-effort. Self-votes are allowed like any other vote.
//
// The vote mutation and the stats upsert are deliberately not one
// transaction: votes are authoritative, stats are a cache that the
// next toggle refreshes anyway.
func ToggleVote(questionID, userID uint) (*VoteResult, error) {
	if err := ensureQuestionExists(questionID); err != nil {
		return nil, err
	}
	if err := ensureUserExists(userID); err != nil {
		return nil, err
	}

	var existing models.QuestionVote
	err := db.DB.Where("question_id = ? AND user_id = ?", questionID, userID).First(&existing).Error

	var isVoted bool
	switch {
	case err == nil:
		// 이미 투표함 → 취소
		if err := db.DB.Delete(&existing).Error; err != nil {
			return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "delete vote question=%d user=%d: %v", questionID, userID, err)
		}
		isVoted = false
	case errors.Is(err, gorm.ErrRecordNotFound):
		vote := models.QuestionVote{QuestionID: questionID, UserID: userID}
		if err := db.DB.Create(&vote).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Concurrent toggle won the insert. The unique index is
				// the safety net; surface it as a benign conflict.
				return nil, apperr.Wrap(apperr.ErrConflict, "이미 투표한 질문입니다")
			}
			return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "create vote question=%d user=%d: %v", questionID, userID, err)
		}
		isVoted = true
	default:
		return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "lookup vote question=%d user=%d: %v", questionID, userID, err)
	}

	voteCount, votes24h, err := recountVotes(questionID)
	if err != nil {
		return nil, err
	}

	// Stats upsert is best-effort: a failure here must not roll back
	// the vote itself.
	if err := upsertStats(questionID, votes24h); err != nil {
		logger.L().Warnw("question_stats upsert failed", "question_id", questionID, "error", err)
	}

	return &VoteResult{IsVoted: isVoted, VoteCount: voteCount, Votes24h: votes24h}, nil
}

// ToggleLike applies the caller-specified like/unlike action. Unlike a
// vote toggle, the direction comes from the client.
func ToggleLike(questionID, userID uint, action string) (*LikeResult, error) {
	if action != LikeActionLike && action != LikeActionUnlike {
		return nil, apperr.Wrap(apperr.ErrValidation, "action은 like 또는 unlike여야 합니다")
	}
	if err := ensureQuestionExists(questionID); err != nil {
		return nil, err
	}
	if err := ensureUserExists(userID); err != nil {
		return nil, err
	}

	if action == LikeActionLike {
		like := models.QuestionLike{QuestionID: questionID, UserID: userID}
		if err := db.DB.Create(&like).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperr.Wrap(apperr.ErrConflict, "이미 좋아요한 질문입니다")
			}
			return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "create like question=%d user=%d: %v", questionID, userID, err)
		}
	} else {
		// Deleting a row that is not there is not an error.
		if err := db.DB.Where("question_id = ? AND user_id = ?", questionID, userID).
			Delete(&models.QuestionLike{}).Error; err != nil {
			return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "delete like question=%d user=%d: %v", questionID, userID, err)
		}
	}

	count, err := countLikes(questionID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{LikeCount: count, IsLiked: action == LikeActionLike}, nil
}

// LikeStatus returns the like count plus, when userID is non-zero,
// whether that user has liked the question. Used for initial page
// render.
func LikeStatus(questionID, userID uint) (*LikeResult, error) {
	if err := ensureQuestionExists(questionID); err != nil {
		return nil, err
	}

	count, err := countLikes(questionID)
	if err != nil {
		return nil, err
	}

	res := &LikeResult{LikeCount: count}
	if userID > 0 {
		var like models.QuestionLike
		err := db.DB.Where("question_id = ? AND user_id = ?", questionID, userID).First(&like).Error
		switch {
		case err == nil:
			res.IsLiked = true
		case errors.Is(err, gorm.ErrRecordNotFound):
			// not liked
		default:
			return nil, apperr.Wrap(apperr.ErrStoreUnavailable, "lookup like question=%d user=%d: %v", questionID, userID, err)
		}
	}
	return res, nil
}

// recountVotes returns the exact lifetime count and the trailing-24h
// count for a question, straight from the vote table.
func recountVotes(questionID uint) (total int64, recent int64, err error) {
	if err = db.DB.Model(&models.QuestionVote{}).
		Where("question_id = ?", questionID).
		Count(&total).Error; err != nil {
		return 0, 0, apperr.Wrap(apperr.ErrStoreUnavailable, "count votes question=%d: %v", questionID, err)
	}

	cutoff := time.Now().Add(-24 * time.Hour)
	if err = db.DB.Model(&models.QuestionVote{}).
		Where("question_id = ? AND created_at >= ?", questionID, cutoff).
		Count(&recent).Error; err != nil {
		return 0, 0, apperr.Wrap(apperr.ErrStoreUnavailable, "count 24h votes question=%d: %v", questionID, err)
	}
	return total, recent, nil
}

func countLikes(questionID uint) (int64, error) {
	var count int64
	if err := db.DB.Model(&models.QuestionLike{}).
		Where("question_id = ?", questionID).
		Count(&count).Error; err != nil {
		return 0, apperr.Wrap(apperr.ErrStoreUnavailable, "count likes question=%d: %v", questionID, err)
	}
	return count, nil
}

func upsertStats(questionID uint, votes24h int64) error {
	stats := models.QuestionStats{
		QuestionID: questionID,
		Votes24h:   int(votes24h),
		UpdatedAt:  time.Now(),
	}
	return db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"votes_24h", "updated_at"}),
	}).Create(&stats).Error
}

func ensureQuestionExists(questionID uint) error {
	var q models.Question
	err := db.DB.Select("id").First(&q, questionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Wrap(apperr.ErrNotFound, "질문을 찾을 수 없습니다")
	}
	if err != nil {
		return apperr.Wrap(apperr.ErrStoreUnavailable, "lookup question %d: %v", questionID, err)
	}
	return nil
}

func ensureUserExists(userID uint) error {
	var u models.User
	err := db.DB.Select("id").First(&u, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Wrap(apperr.ErrNotFound, "사용자를 찾을 수 없습니다")
	}
	if err != nil {
		return apperr.Wrap(apperr.ErrStoreUnavailable, "lookup user %d: %v", userID, err)
	}
	return nil
}
