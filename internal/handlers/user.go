package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pratyush0898/OnlyCodes/internal/dto"
	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"github.com/pratyush0898/OnlyCodes/internal/models"
	"github.com/pratyush0898/OnlyCodes/internal/repository"
	"github.com/pratyush0898/OnlyCodes/internal/util"
)

// GetUserProfile gets a public profile with follower counts
func (h *Handlers) GetUserProfile(c *gin.Context) {
	user, err := h.repos.Profiles.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// FollowUser follows a user by username. Following twice succeeds.
func (h *Handlers) FollowUser(c *gin.Context) {
	h.setFollow(c, true)
}

// UnfollowUser unfollows a user by username. Unfollowing twice succeeds.
func (h *Handlers) UnfollowUser(c *gin.Context) {
	h.setFollow(c, false)
}

func (h *Handlers) setFollow(c *gin.Context, follow bool) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	username := c.Param("username")

	targetID, err := h.repos.Profiles.ResolveID(c.Request.Context(), username)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	action := "unfollow"
	if follow {
		action = "follow"
	}
	ctx, span := h.traceEngagement(c, action, userID, targetID)
	if follow {
		err = h.repos.Social.Follow(ctx, userID, targetID)
	} else {
		err = h.repos.Social.Unfollow(ctx, userID, targetID)
	}
	finishSpan(span, err)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": username, "following": follow})
}

// GetFollowStatus reports whether the session user follows a user
func (h *Handlers) GetFollowStatus(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	username := c.Param("username")

	ctx := c.Request.Context()
	targetID, err := h.repos.Profiles.ResolveID(ctx, username)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	following, err := h.repos.Social.IsFollowing(ctx, userID, targetID)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"username": username, "following": following})
}

// CreateProfile claims a username for the session user. The profile id is
// the session user id.
func (h *Handlers) CreateProfile(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBindError(c, err)
		return
	}

	user, err := h.repos.Profiles.Create(c.Request.Context(), &models.Profile{
		ID:       userID,
		Username: strings.ToLower(req.Username),
		Name:     req.Name,
	})
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	logger.Log.Info("Profile created", logger.WithUserID(userID), logger.WithUsername(user.Username))
	c.JSON(http.StatusCreated, user)
}

// UpdateMyProfile changes only the fields present in the body
func (h *Handlers) UpdateMyProfile(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBindError(c, err)
		return
	}

	user, err := h.repos.Profiles.Update(c.Request.Context(), userID, repository.ProfileUpdate{
		Name:      req.Name,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		Website:   req.Website,
	})
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UploadAvatar stores a profile picture and points avatar_url at it
func (h *Handlers) UploadAvatar(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	if h.media == nil {
		util.RespondWithError(c, apperrors.ServiceUnavailable("media storage"))
		return
	}

	ctx := c.Request.Context()
	// Fail before uploading when the profile does not exist
	if _, err := h.repos.Profiles.GetByID(ctx, userID); err != nil {
		util.RespondWithError(c, err)
		return
	}

	file, header, err := readUpload(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	defer file.Close()

	result, err := h.media.UploadAvatar(ctx, file, header, userID)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	user, err := h.repos.Profiles.Update(ctx, userID, repository.ProfileUpdate{AvatarURL: &result.URL})
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
