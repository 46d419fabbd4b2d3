// Package feed composes feed pages: it picks the query for a feed kind,
// runs it through the post repository and annotates the viewer's likes.
package feed

import (
	"context"
	"errors"
	"time"

	"github.com/pratyush0898/OnlyCodes/internal/dto"
	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"github.com/pratyush0898/OnlyCodes/internal/metrics"
	"github.com/pratyush0898/OnlyCodes/internal/repository"
	"github.com/pratyush0898/OnlyCodes/internal/telemetry"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Kind names a feed
type Kind string

const (
	KindGlobal    Kind = "global"
	KindFollowing Kind = "following"
	KindForYou    Kind = "for_you"
	KindAuthor    Kind = "author"
	KindLiked     Kind = "liked"
)

// Request describes one feed page. ViewerID is the acting user, empty for
// anonymous reads; Username scopes the author and liked feeds.
type Request struct {
	Kind     Kind
	ViewerID string
	Username string
	Page     repository.Page
}

// Service builds feed pages
type Service struct {
	posts      repository.PostRepository
	engagement repository.EngagementRepository
	events     *telemetry.BusinessEvents
}

// NewService creates a new feed service
func NewService(posts repository.PostRepository, engagement repository.EngagementRepository) *Service {
	return &Service{
		posts:      posts,
		engagement: engagement,
		events:     telemetry.NewBusinessEvents(),
	}
}

// Get returns one page of the requested feed
func (s *Service) Get(ctx context.Context, req Request) (*dto.PostPage, error) {
	start := time.Now()
	ctx, span := s.events.TraceGetFeed(ctx, string(req.Kind), telemetry.FeedEventAttrs{
		Page: req.Page.Number,
		Size: req.Page.Size,
	})
	defer span.End()

	page, err := s.fetch(ctx, req)
	if err == nil {
		err = s.annotateLikes(ctx, req.ViewerID, page)
	}
	metrics.RecordFeedQuery(string(req.Kind), time.Since(start), err)

	if err != nil {
		telemetry.RecordError(span, err)
		if errors.Is(err, apperrors.ErrBackendFailure) {
			logger.Log.Error("Feed query failed",
				logger.WithFeed(string(req.Kind)),
				logger.WithUserID(req.ViewerID),
				logger.WithPage(req.Page.Number, req.Page.Size),
				zap.Error(err),
			)
		}
		return nil, err
	}

	telemetry.RecordResultCount(span, len(page.Posts), page.Total)
	return page, nil
}

func (s *Service) fetch(ctx context.Context, req Request) (*dto.PostPage, error) {
	switch req.Kind {
	case KindGlobal:
		return s.posts.ListGlobal(ctx, req.Page)
	case KindFollowing:
		if req.ViewerID == "" {
			return nil, apperrors.Unauthorized("sign in to see the following feed")
		}
		return s.posts.ListFollowing(ctx, req.ViewerID, req.Page)
	case KindForYou:
		if req.ViewerID == "" {
			return nil, apperrors.Unauthorized("sign in to see your feed")
		}
		return s.posts.ListForYou(ctx, req.ViewerID, req.Page)
	case KindAuthor:
		return s.posts.ListByAuthor(ctx, req.Username, req.Page)
	case KindLiked:
		return s.posts.ListLikedByUser(ctx, req.Username, req.Page)
	default:
		return nil, apperrors.InvalidInput("feed", "unknown feed "+string(req.Kind))
	}
}

// annotateLikes sets IsLiked on every post for a signed-in viewer
func (s *Service) annotateLikes(ctx context.Context, viewerID string, page *dto.PostPage) error {
	if viewerID == "" || len(page.Posts) == 0 {
		return nil
	}

	ids := lo.Map(page.Posts, func(p dto.Post, _ int) string { return p.ID })
	liked, err := s.engagement.LikedPostIDs(ctx, viewerID, ids)
	if err != nil {
		return err
	}

	for i := range page.Posts {
		isLiked := liked[page.Posts[i].ID]
		page.Posts[i].IsLiked = &isLiked
	}
	return nil
}
