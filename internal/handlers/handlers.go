// Package handlers is the HTTP adapter over the repositories and the feed
// service. Handlers read the acting user only from the session context.
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/pratyush0898/OnlyCodes/internal/auth"
	"github.com/pratyush0898/OnlyCodes/internal/container"
	"github.com/pratyush0898/OnlyCodes/internal/feed"
	"github.com/pratyush0898/OnlyCodes/internal/middleware"
	"github.com/pratyush0898/OnlyCodes/internal/repository"
	"github.com/pratyush0898/OnlyCodes/internal/storage"
	"github.com/pratyush0898/OnlyCodes/internal/telemetry"
	"gorm.io/gorm"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	db     *gorm.DB
	repos  *repository.Repositories
	feed   *feed.Service
	media  storage.MediaUploader
	limits repository.Limits
	events *telemetry.BusinessEvents
}

// NewHandlers creates a new handlers instance from the container
func NewHandlers(c *container.Container, limits repository.Limits) *Handlers {
	return &Handlers{
		db:     c.DB(),
		repos:  c.Repositories(),
		feed:   c.Feed(),
		media:  c.Media(),
		limits: limits,
		events: telemetry.NewBusinessEvents(),
	}
}

// RegisterRoutes mounts the API under group. Routes marked auth require a
// session; feed and profile reads accept an optional one.
func (h *Handlers) RegisterRoutes(api *gin.RouterGroup, verifier auth.TokenVerifier, uploadLimit gin.HandlerFunc) {
	requireAuth := middleware.RequireAuth(verifier)
	optionalAuth := middleware.OptionalAuth(verifier)
	if uploadLimit == nil {
		uploadLimit = func(c *gin.Context) { c.Next() }
	}

	feeds := api.Group("/feed")
	{
		feeds.GET("/global", optionalAuth, h.GetGlobalFeed)
		feeds.GET("/following", requireAuth, h.GetFollowingFeed)
		feeds.GET("/for-you", requireAuth, h.GetForYouFeed)
	}

	posts := api.Group("/posts")
	{
		posts.POST("", requireAuth, h.CreatePost)
		posts.POST("/:id/like", requireAuth, h.LikePost)
		posts.DELETE("/:id/like", requireAuth, h.UnlikePost)
		posts.GET("/:id/like", requireAuth, h.GetLikeStatus)
		posts.GET("/:id/tags", h.GetPostTags)
		posts.POST("/:id/tags", requireAuth, h.AddPostTag)
	}

	api.GET("/tags", h.ListTags)

	users := api.Group("/users")
	{
		users.GET("/:username", h.GetUserProfile)
		users.GET("/:username/posts", optionalAuth, h.GetUserPosts)
		users.GET("/:username/likes", optionalAuth, h.GetUserLikes)
		users.POST("/:username/follow", requireAuth, h.FollowUser)
		users.DELETE("/:username/follow", requireAuth, h.UnfollowUser)
		users.GET("/:username/follow", requireAuth, h.GetFollowStatus)
	}

	profiles := api.Group("/profiles", requireAuth)
	{
		profiles.POST("", h.CreateProfile)
		profiles.PUT("/me", h.UpdateMyProfile)
		profiles.POST("/me/avatar", uploadLimit, h.UploadAvatar)
	}

	prefs := api.Group("/preferences", requireAuth)
	{
		prefs.GET("", h.GetPreferences)
		prefs.PUT("", h.UpdatePreferences)
	}

	api.POST("/media", requireAuth, uploadLimit, h.UploadMedia)
}
