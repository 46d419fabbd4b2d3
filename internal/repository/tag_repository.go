package repository

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"github.com/pratyush0898/OnlyCodes/internal/metrics"
	"github.com/pratyush0898/OnlyCodes/internal/models"
	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagRepository handles tags and their attachment to posts
type TagRepository interface {
	List(ctx context.Context) ([]models.Tag, error)
	Get(ctx context.Context, tagID string) (*models.Tag, error)
	AddToPost(ctx context.Context, postID, tagID string) error
	ForPost(ctx context.Context, postID string) ([]models.Tag, error)
	Ensure(ctx context.Context, names []string) ([]models.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// List returns all tags ordered by name
func (r *tagRepository) List(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, apperrors.Backend("list tags", err)
	}
	return tags, nil
}

// Get returns one tag by id
func (r *tagRepository) Get(ctx context.Context, tagID string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", tagID).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("tag")
		}
		return nil, apperrors.Backend("get tag", err)
	}
	return &tag, nil
}

// AddToPost attaches a tag. Attaching it twice is a no-op.
func (r *tagRepository) AddToPost(ctx context.Context, postID, tagID string) error {
	if postID == "" || tagID == "" {
		return apperrors.InvalidInput("tag_id", "post and tag are required")
	}

	err := r.db.WithContext(ctx).Create(&models.PostTag{PostID: postID, TagID: tagID}).Error
	if err != nil {
		if apperrors.IsUniqueViolation(err) {
			logger.Log.Debug("Tag already on post", logger.WithPostID(postID), zap.String("tag_id", tagID))
			metrics.RecordConflictSuppressed("post_tags")
			metrics.RecordEngagement("tag", metrics.OutcomeNoop)
			return nil
		}
		metrics.RecordEngagement("tag", metrics.OutcomeError)
		return apperrors.Backend("tag post", err)
	}

	metrics.RecordEngagement("tag", metrics.OutcomeApplied)
	return nil
}

// ForPost returns the tags of a post ordered by name
func (r *tagRepository) ForPost(ctx context.Context, postID string) ([]models.Tag, error) {
	tags := []models.Tag{}
	err := r.db.WithContext(ctx).
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Order("tags.name ASC").
		Find(&tags).Error
	if err != nil {
		return nil, apperrors.Backend("post tags", err)
	}
	return tags, nil
}

// Ensure returns the tags with the given names, creating missing ones.
// Names are lowercased and trimmed.
func (r *tagRepository) Ensure(ctx context.Context, names []string) ([]models.Tag, error) {
	names = lo.Uniq(lo.FilterMap(names, func(name string, _ int) (string, bool) {
		name = strings.ToLower(strings.TrimSpace(name))
		return name, name != ""
	}))
	if len(names) == 0 {
		return []models.Tag{}, nil
	}

	db := r.db.WithContext(ctx)

	candidates := lo.Map(names, func(name string, _ int) models.Tag {
		return models.Tag{Name: name}
	})
	err := db.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
		Create(&candidates).Error
	if err != nil {
		return nil, apperrors.Backend("ensure tags", err)
	}

	tags := []models.Tag{}
	if err := db.Where("name IN ?", names).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, apperrors.Backend("ensure tags", err)
	}
	return tags, nil
}
