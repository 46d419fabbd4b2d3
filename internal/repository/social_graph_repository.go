package repository

import (
	"context"

	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"github.com/pratyush0898/OnlyCodes/internal/metrics"
	"github.com/pratyush0898/OnlyCodes/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SocialGraphRepository handles follow edges. Follow and Unfollow are
// idempotent: repeating either leaves the graph unchanged and succeeds.
type SocialGraphRepository interface {
	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) error
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	FollowingIDs(ctx context.Context, userID string) ([]string, error)
	FollowerCount(ctx context.Context, userID string) (int64, error)
	FollowingCount(ctx context.Context, userID string) (int64, error)
}

type socialGraphRepository struct {
	db *gorm.DB
}

// NewSocialGraphRepository creates a new social graph repository
func NewSocialGraphRepository(db *gorm.DB) SocialGraphRepository {
	return &socialGraphRepository{db: db}
}

func (r *socialGraphRepository) Follow(ctx context.Context, followerID, followingID string) error {
	if err := validateEdge(followerID, followingID); err != nil {
		return err
	}

	follow := models.Follow{FollowerID: followerID, FollowingID: followingID}
	if err := r.db.WithContext(ctx).Create(&follow).Error; err != nil {
		if apperrors.IsUniqueViolation(err) {
			logger.Log.Debug("Already following",
				logger.WithUserID(followerID),
				zap.String("following_id", followingID),
			)
			metrics.RecordConflictSuppressed("follows")
			metrics.RecordEngagement("follow", metrics.OutcomeNoop)
			return nil
		}
		metrics.RecordEngagement("follow", metrics.OutcomeError)
		return apperrors.Backend("follow", err)
	}

	metrics.RecordEngagement("follow", metrics.OutcomeApplied)
	return nil
}

func (r *socialGraphRepository) Unfollow(ctx context.Context, followerID, followingID string) error {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if result.Error != nil {
		metrics.RecordEngagement("unfollow", metrics.OutcomeError)
		return apperrors.Backend("unfollow", result.Error)
	}

	outcome := metrics.OutcomeApplied
	if result.RowsAffected == 0 {
		outcome = metrics.OutcomeNoop
	}
	metrics.RecordEngagement("unfollow", outcome)
	return nil
}

func (r *socialGraphRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Backend("is following", err)
	}
	return count > 0, nil
}

// FollowingIDs returns every profile id userID follows
func (r *socialGraphRepository) FollowingIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, apperrors.Backend("list following", err)
	}
	return ids, nil
}

func (r *socialGraphRepository) FollowerCount(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, "following_id = ?", userID)
}

func (r *socialGraphRepository) FollowingCount(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, "follower_id = ?", userID)
}

func (r *socialGraphRepository) count(ctx context.Context, query, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where(query, userID).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Backend("count follows", err)
	}
	return count, nil
}

func validateEdge(followerID, followingID string) error {
	if followerID == "" || followingID == "" {
		return apperrors.InvalidInput("user_id", "both users are required")
	}
	if followerID == followingID {
		return apperrors.InvalidInput("user_id", "cannot follow yourself")
	}
	return nil
}
