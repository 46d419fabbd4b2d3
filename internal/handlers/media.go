package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/util"
)

// UploadMedia stores an image or video for a later post and returns its
// URL and media type
func (h *Handlers) UploadMedia(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	if h.media == nil {
		util.RespondWithError(c, apperrors.ServiceUnavailable("media storage"))
		return
	}

	file, header, err := readUpload(c)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}
	defer file.Close()

	result, err := h.media.UploadMedia(c.Request.Context(), file, header, userID)
	if err != nil {
		util.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
