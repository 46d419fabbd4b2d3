package repository

import (
	"context"
	"errors"

	"github.com/pratyush0898/OnlyCodes/internal/dto"
	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"github.com/pratyush0898/OnlyCodes/internal/models"
	"github.com/pratyush0898/OnlyCodes/internal/validation"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository serves post creation and every feed. All lists are
// ordered newest first with ties broken by id, and windowed by Page.
type PostRepository interface {
	ListGlobal(ctx context.Context, page Page) (*dto.PostPage, error)
	ListFollowing(ctx context.Context, userID string, page Page) (*dto.PostPage, error)
	ListForYou(ctx context.Context, userID string, page Page) (*dto.PostPage, error)
	ListByAuthor(ctx context.Context, username string, page Page) (*dto.PostPage, error)
	ListLikedByUser(ctx context.Context, username string, page Page) (*dto.PostPage, error)
	Get(ctx context.Context, postID string) (*dto.Post, error)
	Create(ctx context.Context, post *models.Post, tagIDs []string) (*dto.Post, error)
}

type postRepository struct {
	db          *gorm.DB
	social      SocialGraphRepository
	preferences PreferenceRepository
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{
		db:          db,
		social:      NewSocialGraphRepository(db),
		preferences: NewPreferenceRepository(db),
	}
}

type scope = func(*gorm.DB) *gorm.DB

func authoredBy(userIDs ...string) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.user_id IN ?", userIDs)
	}
}

func taggedWithAny(tagIDs []string) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("EXISTS (SELECT 1 FROM post_tags WHERE post_tags.post_id = posts.id AND post_tags.tag_id IN ?)", tagIDs)
	}
}

func inLanguages(languages []string) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("posts.language IN ?", languages)
	}
}

func likedBy(userID string) scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("EXISTS (SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?)", userID)
	}
}

func withAuthorAndCounts(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Likes", countBy("post_id")).
		Preload("Comments", countBy("post_id"))
}

// list counts the filtered posts, then fetches the page window
func (r *postRepository) list(ctx context.Context, op string, page Page, scopes ...scope) (*dto.PostPage, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	var total int64
	if err := db.Model(&models.Post{}).Scopes(scopes...).Count(&total).Error; err != nil {
		return nil, apperrors.Backend(op, err)
	}

	from, _ := page.Window()
	var rows []models.PostRow
	err := db.Scopes(scopes...).
		Scopes(withAuthorAndCounts).
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Offset(from).
		Limit(page.Size).
		Find(&rows).Error
	if err != nil {
		return nil, apperrors.Backend(op, err)
	}

	posts, err := dto.ToPosts(rows)
	if err != nil {
		return nil, err
	}
	return newPostPage(posts, total, page), nil
}

func (r *postRepository) ListGlobal(ctx context.Context, page Page) (*dto.PostPage, error) {
	return r.list(ctx, "list global feed", page)
}

// ListFollowing returns posts by the accounts userID follows. Following
// nobody yields an empty page without querying posts.
func (r *postRepository) ListFollowing(ctx context.Context, userID string, page Page) (*dto.PostPage, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	following, err := r.social.FollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(following) == 0 {
		logger.Log.Debug("Following feed short-circuited", logger.WithUserID(userID))
		return newPostPage(nil, 0, page), nil
	}

	return r.list(ctx, "list following feed", page, authoredBy(following...))
}

// ListForYou filters to posts carrying any preferred tag and, when set,
// written in a preferred language. Without preferences it is the global feed.
func (r *postRepository) ListForYou(ctx context.Context, userID string, page Page) (*dto.PostPage, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	pref, err := r.preferences.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	var scopes []scope
	if len(pref.PreferredTags) > 0 {
		scopes = append(scopes, taggedWithAny(pref.PreferredTags))
	}
	if len(pref.PreferredLanguages) > 0 {
		scopes = append(scopes, inLanguages(pref.PreferredLanguages))
	}
	if len(scopes) == 0 {
		logger.Log.Debug("For You feed falling back to global", logger.WithUserID(userID))
	}

	return r.list(ctx, "list for you feed", page, scopes...)
}

func (r *postRepository) ListByAuthor(ctx context.Context, username string, page Page) (*dto.PostPage, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	authorID, err := resolveProfileID(ctx, r.db, username)
	if err != nil {
		return nil, err
	}

	return r.list(ctx, "list user posts", page, authoredBy(authorID))
}

func (r *postRepository) ListLikedByUser(ctx context.Context, username string, page Page) (*dto.PostPage, error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	userID, err := resolveProfileID(ctx, r.db, username)
	if err != nil {
		return nil, err
	}

	return r.list(ctx, "list liked posts", page, likedBy(userID))
}

func (r *postRepository) Get(ctx context.Context, postID string) (*dto.Post, error) {
	var row models.PostRow
	err := r.db.WithContext(ctx).
		Scopes(withAuthorAndCounts).
		Where("posts.id = ?", postID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("post")
		}
		return nil, apperrors.Backend("get post", err)
	}

	post, err := dto.ToPost(&row)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Create validates and inserts a post for post.AuthorID, attaching tagIDs
// in the same transaction, and returns the mapped record.
func (r *postRepository) Create(ctx context.Context, post *models.Post, tagIDs []string) (*dto.Post, error) {
	if post == nil {
		return nil, apperrors.InvalidInput("post", "post is required")
	}
	if post.AuthorID == "" {
		return nil, apperrors.InvalidInput("author_id", "author is required")
	}
	if err := validation.ValidatePost(post); err != nil {
		return nil, err
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var authors int64
		if err := tx.Model(&models.Profile{}).Where("id = ?", post.AuthorID).Count(&authors).Error; err != nil {
			return apperrors.Backend("create post", err)
		}
		if authors == 0 {
			return apperrors.NotFound("author profile")
		}

		if err := tx.Create(post).Error; err != nil {
			return apperrors.Backend("create post", err)
		}

		tagIDs = lo.Uniq(lo.Without(tagIDs, ""))
		if len(tagIDs) == 0 {
			return nil
		}
		var known int64
		if err := tx.Model(&models.Tag{}).Where("id IN ?", tagIDs).Count(&known).Error; err != nil {
			return apperrors.Backend("tag post", err)
		}
		if int(known) != len(tagIDs) {
			return apperrors.NotFound("tag")
		}
		links := lo.Map(tagIDs, func(tagID string, _ int) models.PostTag {
			return models.PostTag{PostID: post.ID, TagID: tagID}
		})
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
			return apperrors.Backend("tag post", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Post created", logger.WithPostID(post.ID), logger.WithUserID(post.AuthorID))
	return r.Get(ctx, post.ID)
}
