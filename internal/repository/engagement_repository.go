package repository

import (
	"context"

	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"github.com/pratyush0898/OnlyCodes/internal/metrics"
	"github.com/pratyush0898/OnlyCodes/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// EngagementRepository handles likes. It stores absolute state only;
// Like and Unlike are idempotent.
type EngagementRepository interface {
	Like(ctx context.Context, postID, userID string) error
	Unlike(ctx context.Context, postID, userID string) error
	IsLiked(ctx context.Context, postID, userID string) (bool, error)
	LikedPostIDs(ctx context.Context, userID string, postIDs []string) (map[string]bool, error)
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new engagement repository
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// Like records userID's like of postID. Liking twice is a no-op; liking
// an unknown post is NotFound.
func (r *engagementRepository) Like(ctx context.Context, postID, userID string) error {
	if postID == "" || userID == "" {
		return apperrors.InvalidInput("post_id", "post and user are required")
	}

	db := r.db.WithContext(ctx)

	var posts int64
	if err := db.Model(&models.Post{}).Where("id = ?", postID).Count(&posts).Error; err != nil {
		return apperrors.Backend("like", err)
	}
	if posts == 0 {
		return apperrors.NotFound("post")
	}

	like := models.Like{PostID: postID, UserID: userID}
	if err := db.Create(&like).Error; err != nil {
		if apperrors.IsUniqueViolation(err) {
			logger.Log.Debug("Post already liked", logger.WithPostID(postID), logger.WithUserID(userID))
			metrics.RecordConflictSuppressed("likes")
			metrics.RecordEngagement("like", metrics.OutcomeNoop)
			return nil
		}
		metrics.RecordEngagement("like", metrics.OutcomeError)
		return apperrors.Backend("like", err)
	}

	metrics.RecordEngagement("like", metrics.OutcomeApplied)
	return nil
}

func (r *engagementRepository) Unlike(ctx context.Context, postID, userID string) error {
	result := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&models.Like{})
	if result.Error != nil {
		metrics.RecordEngagement("unlike", metrics.OutcomeError)
		return apperrors.Backend("unlike", result.Error)
	}

	outcome := metrics.OutcomeApplied
	if result.RowsAffected == 0 {
		outcome = metrics.OutcomeNoop
	}
	metrics.RecordEngagement("unlike", outcome)
	return nil
}

func (r *engagementRepository) IsLiked(ctx context.Context, postID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Backend("is liked", err)
	}
	return count > 0, nil
}

// LikedPostIDs returns the subset of postIDs liked by userID, in one query
func (r *engagementRepository) LikedPostIDs(ctx context.Context, userID string, postIDs []string) (map[string]bool, error) {
	if userID == "" || len(postIDs) == 0 {
		return map[string]bool{}, nil
	}

	var liked []string
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id IN ?", userID, lo.Uniq(postIDs)).
		Pluck("post_id", &liked).Error
	if err != nil {
		return nil, apperrors.Backend("liked posts", err)
	}

	return lo.Associate(liked, func(id string) (string, bool) {
		return id, true
	}), nil
}
