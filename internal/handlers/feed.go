package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pratyush0898/OnlyCodes/internal/feed"
	"github.com/pratyush0898/OnlyCodes/internal/util"
)

// GetGlobalFeed gets every post, newest first
func (h *Handlers) GetGlobalFeed(c *gin.Context) {
	h.serveFeed(c, feed.KindGlobal, "")
}

// GetFollowingFeed gets posts by the accounts the viewer follows
func (h *Handlers) GetFollowingFeed(c *gin.Context) {
	h.serveFeed(c, feed.KindFollowing, "")
}

// GetForYouFeed gets posts matching the viewer's preferences
func (h *Handlers) GetForYouFeed(c *gin.Context) {
	h.serveFeed(c, feed.KindForYou, "")
}

// GetUserPosts gets the posts a user authored
func (h *Handlers) GetUserPosts(c *gin.Context) {
	h.serveFeed(c, feed.KindAuthor, c.Param("username"))
}

// GetUserLikes gets the posts a user liked
func (h *Handlers) GetUserLikes(c *gin.Context) {
	h.serveFeed(c, feed.KindLiked, c.Param("username"))
}

func (h *Handlers) serveFeed(c *gin.Context, kind feed.Kind, username string) {
	page, err := util.ParsePage(c, h.limits)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	result, err := h.feed.Get(c.Request.Context(), feed.Request{
		Kind:     kind,
		ViewerID: util.OptionalUserID(c),
		Username: username,
		Page:     page,
	})
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
