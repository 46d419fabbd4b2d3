package repository

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceUpdate carries the lists to replace; nil leaves a list unchanged
type PreferenceUpdate struct {
	PreferredTags      *[]string
	PreferredLanguages *[]string
}

// PreferenceRepository stores the For You configuration, one row per user
type PreferenceRepository interface {
	Get(ctx context.Context, userID string) (*models.UserPreference, error)
	Upsert(ctx context.Context, userID string, update PreferenceUpdate) (*models.UserPreference, error)
}

type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *gorm.DB) PreferenceRepository {
	return &preferenceRepository{db: db}
}

// Get returns the stored preferences, or empty lists when none are stored
func (r *preferenceRepository) Get(ctx context.Context, userID string) (*models.UserPreference, error) {
	var pref models.UserPreference
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.UserPreference{
				UserID:             userID,
				PreferredTags:      []string{},
				PreferredLanguages: []string{},
			}, nil
		}
		return nil, apperrors.Backend("get preferences", err)
	}
	if pref.PreferredTags == nil {
		pref.PreferredTags = []string{}
	}
	if pref.PreferredLanguages == nil {
		pref.PreferredLanguages = []string{}
	}
	return &pref, nil
}

// Upsert inserts the row or updates only the provided lists, in a single
// INSERT ... ON CONFLICT (user_id) statement.
func (r *preferenceRepository) Upsert(ctx context.Context, userID string, update PreferenceUpdate) (*models.UserPreference, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user_id", "user is required")
	}

	row := models.UserPreference{UserID: userID}
	columns := []string{"updated_at"}
	if update.PreferredTags != nil {
		row.PreferredTags = normalizeList(*update.PreferredTags, false)
		columns = append(columns, "preferred_tags")
	}
	if update.PreferredLanguages != nil {
		row.PreferredLanguages = normalizeList(*update.PreferredLanguages, true)
		columns = append(columns, "preferred_languages")
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		Create(&row).Error
	if err != nil {
		return nil, apperrors.Backend("upsert preferences", err)
	}

	return r.Get(ctx, userID)
}

// normalizeList trims, drops blanks and duplicates. Languages compare
// case-insensitively, tag ids are opaque.
func normalizeList(values []string, lower bool) []string {
	out := lo.FilterMap(values, func(v string, _ int) (string, bool) {
		v = strings.TrimSpace(v)
		if lower {
			v = strings.ToLower(v)
		}
		return v, v != ""
	})
	return lo.Uniq(out)
}
