package util

import (
	"github.com/gin-gonic/gin"
	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
)

// Context keys set by the session middleware
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
)

// GetUserIDFromContext extracts the acting user id from the Gin context.
// If the request has no session, it responds with 401 and returns false.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID := OptionalUserID(c)
	if userID == "" {
		RespondWithAPIError(c, apperrors.Unauthorized("user not authenticated"))
		return "", false
	}
	return userID, true
}

// OptionalUserID returns the acting user id, or "" for anonymous requests
func OptionalUserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}
