// Package container holds the server's dependencies and their cleanup hooks.
package container

import (
	"context"
	"errors"
	"sync"

	"github.com/pratyush0898/OnlyCodes/internal/auth"
	"github.com/pratyush0898/OnlyCodes/internal/cache"
	"github.com/pratyush0898/OnlyCodes/internal/feed"
	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"github.com/pratyush0898/OnlyCodes/internal/repository"
	"github.com/pratyush0898/OnlyCodes/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds all application dependencies and provides type-safe access
type Container struct {
	db     *gorm.DB
	logger *zap.Logger
	cache  *cache.RedisClient

	media storage.MediaUploader
	auth  *auth.Service

	repos *repository.Repositories
	feed  *feed.Service

	cleanupFuncs []func(context.Context) error
	mu           sync.RWMutex
}

// New creates a new empty container. Services are registered with the With* methods.
func New() *Container {
	return &Container{
		cleanupFuncs: make([]func(context.Context) error, 0),
	}
}

// WithDB registers the database and builds the repositories and feed
// service on top of it.
func (c *Container) WithDB(db *gorm.DB) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.db = db
	c.repos = repository.New(db)
	c.feed = feed.NewService(c.repos.Posts, c.repos.Engagement)
	return c
}

// DB returns the database connection
func (c *Container) DB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// WithLogger registers the logger
func (c *Container) WithLogger(l *zap.Logger) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = l
	return c
}

// Logger returns the logger instance
func (c *Container) Logger() *zap.Logger {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.logger == nil {
		return logger.Log
	}
	return c.logger
}

// WithCache registers the Redis client. nil means Redis is disabled.
func (c *Container) WithCache(client *cache.RedisClient) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = client
	return c
}

// Cache returns the Redis client, or nil when Redis is disabled
func (c *Container) Cache() *cache.RedisClient {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cache
}

// WithMediaUploader registers the media uploader
func (c *Container) WithMediaUploader(uploader storage.MediaUploader) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.media = uploader
	return c
}

// Media returns the media uploader, or nil when storage is not configured
func (c *Container) Media() storage.MediaUploader {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.media
}

// WithAuthService registers the authentication service
func (c *Container) WithAuthService(service *auth.Service) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.auth = service
	return c
}

// Auth returns the authentication service
func (c *Container) Auth() *auth.Service {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.auth
}

// Repositories returns the data access layer
func (c *Container) Repositories() *repository.Repositories {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.repos
}

// Feed returns the feed service
func (c *Container) Feed() *feed.Service {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.feed
}

// OnCleanup registers a function run by Cleanup, in reverse order of registration
func (c *Container) OnCleanup(fn func(context.Context) error) *Container {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cleanupFuncs = append(c.cleanupFuncs, fn)
	return c
}

// Cleanup runs every cleanup hook and returns the joined errors
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	funcs := c.cleanupFuncs
	c.cleanupFuncs = nil
	c.mu.Unlock()

	var errs []error
	for i := len(funcs) - 1; i >= 0; i-- {
		if err := funcs[i](ctx); err != nil {
			c.Logger().Error("Cleanup function failed", zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Validate checks that all required dependencies are registered.
// Call it after initialization and before starting the server.
func (c *Container) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	missingDeps := []string{}
	if c.db == nil {
		missingDeps = append(missingDeps, "database (DB)")
	}
	if c.auth == nil {
		missingDeps = append(missingDeps, "auth service")
	}

	if len(missingDeps) > 0 {
		return NewInitializationError("Missing required dependencies", missingDeps)
	}

	if c.cache == nil {
		c.loggerLocked().Info("Redis disabled, rate limiting is per instance")
	}
	if c.media == nil {
		c.loggerLocked().Warn("Media storage not configured, uploads will return 503")
	}
	return nil
}

func (c *Container) loggerLocked() *zap.Logger {
	if c.logger == nil {
		return logger.Log
	}
	return c.logger
}
