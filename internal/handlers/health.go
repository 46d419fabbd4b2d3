package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pratyush0898/OnlyCodes/internal/database"
	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"go.uber.org/zap"
)

// Health reports database reachability
func (h *Handlers) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	dbStatus := "ok"
	if err := database.Ping(ctx, h.db); err != nil {
		logger.Log.Warn("Health check failed", zap.Error(err))
		status, code, dbStatus = "degraded", http.StatusServiceUnavailable, "unreachable"
	}

	c.JSON(code, gin.H{
		"status":    status,
		"database":  dbStatus,
		"timestamp": time.Now().UTC(),
		"service":   "onlycodes-api",
	})
}
