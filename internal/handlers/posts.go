package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pratyush0898/OnlyCodes/internal/dto"
	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/models"
	"github.com/pratyush0898/OnlyCodes/internal/util"
)

// CreatePost creates a post authored by the session user
func (h *Handlers) CreatePost(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBindError(c, err)
		return
	}

	post := &models.Post{
		AuthorID:    userID,
		Content:     req.Content,
		CodeSnippet: req.CodeSnippet,
		Language:    req.Language,
		MediaURL:    req.MediaURL,
		MediaType:   req.MediaType,
	}
	created, err := h.repos.Posts.Create(c.Request.Context(), post, req.TagIDs)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// LikePost likes a post. Liking twice succeeds.
func (h *Handlers) LikePost(c *gin.Context) {
	h.setLike(c, true)
}

// UnlikePost removes a like. Unliking a post that is not liked succeeds.
func (h *Handlers) UnlikePost(c *gin.Context) {
	h.setLike(c, false)
}

func (h *Handlers) setLike(c *gin.Context, liked bool) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	postID := c.Param("id")

	action := "unlike"
	if liked {
		action = "like"
	}
	ctx, span := h.traceEngagement(c, action, userID, postID)

	var err error
	if liked {
		err = h.repos.Engagement.Like(ctx, postID, userID)
	} else {
		err = h.repos.Engagement.Unlike(ctx, postID, userID)
	}
	finishSpan(span, err)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post_id": postID, "liked": liked})
}

// GetLikeStatus reports whether the session user likes a post
func (h *Handlers) GetLikeStatus(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	postID := c.Param("id")

	liked, err := h.repos.Engagement.IsLiked(c.Request.Context(), postID, userID)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post_id": postID, "liked": liked})
}

// GetPostTags lists a post's tags
func (h *Handlers) GetPostTags(c *gin.Context) {
	tags, err := h.repos.Tags.ForPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// addTagRequest names a tag by id or by name; a new name creates the tag
type addTagRequest struct {
	TagID string `json:"tag_id"`
	Name  string `json:"name" binding:"omitempty,max=50"`
}

// AddPostTag attaches a tag to a post the session user authored
func (h *Handlers) AddPostTag(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	postID := c.Param("id")

	var req addTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	post, err := h.repos.Posts.Get(ctx, postID)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	if post.AuthorID != userID {
		util.RespondWithError(c, apperrors.Forbidden("only the author can tag a post"))
		return
	}

	tag, err := h.resolveTag(c, req)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	ctx, span := h.traceEngagement(c, "tag", userID, postID)
	err = h.repos.Tags.AddToPost(ctx, postID, tag.ID)
	finishSpan(span, err)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	tags, err := h.repos.Tags.ForPost(c.Request.Context(), postID)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *Handlers) resolveTag(c *gin.Context, req addTagRequest) (*models.Tag, error) {
	ctx := c.Request.Context()

	if name := strings.TrimSpace(req.Name); name != "" {
		tags, err := h.repos.Tags.Ensure(ctx, []string{name})
		if err != nil {
			return nil, err
		}
		if len(tags) == 0 {
			return nil, apperrors.InvalidInput("name", "tag name is empty")
		}
		return &tags[0], nil
	}

	if req.TagID == "" {
		return nil, apperrors.InvalidInput("tag_id", "tag_id or name is required")
	}
	return h.repos.Tags.Get(ctx, req.TagID)
}

// ListTags lists every tag by name
func (h *Handlers) ListTags(c *gin.Context) {
	tags, err := h.repos.Tags.List(c.Request.Context())
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}
