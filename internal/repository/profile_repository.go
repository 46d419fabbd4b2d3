package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/pratyush0898/OnlyCodes/internal/dto"
	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"github.com/pratyush0898/OnlyCodes/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileUpdate carries the profile fields to change; nil means unchanged.
// Username is not updatable.
type ProfileUpdate struct {
	Name      *string
	Bio       *string
	AvatarURL *string
	Website   *string
}

// ProfileRepository handles profile reads and owner updates
type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) (*dto.User, error)
	GetByID(ctx context.Context, userID string) (*dto.User, error)
	GetByUsername(ctx context.Context, username string) (*dto.User, error)
	ResolveID(ctx context.Context, username string) (string, error)
	Update(ctx context.Context, userID string, update ProfileUpdate) (*dto.User, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// Create inserts a profile. A taken username is a Conflict.
func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) (*dto.User, error) {
	if profile == nil {
		return nil, apperrors.InvalidInput("profile", "profile is required")
	}
	profile.Username = strings.TrimSpace(profile.Username)
	if profile.Username == "" {
		return nil, apperrors.InvalidInput("username", "username is required")
	}

	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.Conflict("profile")
		}
		return nil, apperrors.Backend("create profile", err)
	}

	return r.GetByID(ctx, profile.ID)
}

// GetByID loads a profile with its follower and following counts
func (r *profileRepository) GetByID(ctx context.Context, userID string) (*dto.User, error) {
	return r.get(ctx, "id = ?", userID)
}

// GetByUsername loads a profile with its follower and following counts
func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*dto.User, error) {
	return r.get(ctx, "username = ?", username)
}

func (r *profileRepository) get(ctx context.Context, query string, arg string) (*dto.User, error) {
	var row models.ProfileRow
	err := r.db.WithContext(ctx).
		Preload("Followers", countBy("following_id")).
		Preload("Following", countBy("follower_id")).
		Where(query, arg).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("profile")
		}
		return nil, apperrors.Backend("get profile", err)
	}
	return dto.ToUser(&row), nil
}

// ResolveID maps a username to its profile id. The lookup and the query
// that uses its result are separate round trips, so a concurrent rename
// is not observed atomically.
func (r *profileRepository) ResolveID(ctx context.Context, username string) (string, error) {
	return resolveProfileID(ctx, r.db, username)
}

// Update changes only the provided fields
func (r *profileRepository) Update(ctx context.Context, userID string, update ProfileUpdate) (*dto.User, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = strings.TrimSpace(*update.Name)
	}
	if update.Bio != nil {
		fields["bio"] = *update.Bio
	}
	if update.AvatarURL != nil {
		fields["avatar_url"] = *update.AvatarURL
	}
	if update.Website != nil {
		fields["website"] = *update.Website
	}

	if len(fields) > 0 {
		result := r.db.WithContext(ctx).
			Model(&models.Profile{}).
			Where("id = ?", userID).
			Updates(fields)
		if result.Error != nil {
			return nil, apperrors.Backend("update profile", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, apperrors.NotFound("profile")
		}
		logger.Log.Debug("Profile updated", logger.WithUserID(userID), zap.Int("fields", len(fields)))
	}

	return r.GetByID(ctx, userID)
}

func resolveProfileID(ctx context.Context, db *gorm.DB, username string) (string, error) {
	var ids []string
	err := db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("username = ?", username).
		Limit(1).
		Pluck("id", &ids).Error
	if err != nil {
		return "", apperrors.Backend("resolve username", err)
	}
	if len(ids) == 0 {
		return "", apperrors.NotFound("profile")
	}
	return ids[0], nil
}

// countBy preloads an aggregate relation as one COUNT(*) row per parent
func countBy(foreignKey string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Select(foreignKey + ", COUNT(*) AS count").Group(foreignKey)
	}
}
