package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pratyush0898/OnlyCodes/internal/dto"
	"github.com/pratyush0898/OnlyCodes/internal/repository"
	"github.com/pratyush0898/OnlyCodes/internal/util"
)

// GetPreferences returns the session user's For You preferences
func (h *Handlers) GetPreferences(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	prefs, err := h.repos.Preferences.Get(c.Request.Context(), userID)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPreferences(prefs))
}

// UpdatePreferences replaces the lists present in the body
func (h *Handlers) UpdatePreferences(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req dto.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBindError(c, err)
		return
	}

	prefs, err := h.repos.Preferences.Upsert(c.Request.Context(), userID, repository.PreferenceUpdate{
		PreferredTags:      req.PreferredTags,
		PreferredLanguages: req.PreferredLanguages,
	})
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPreferences(prefs))
}
