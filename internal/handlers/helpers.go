package handlers

import (
	"context"
	"mime/multipart"

	"github.com/gin-gonic/gin"
	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/telemetry"
	"github.com/pratyush0898/OnlyCodes/internal/util"
	"go.opentelemetry.io/otel/trace"
)

// maxUploadBytes caps media and avatar uploads
const maxUploadBytes = 50 << 20

// traceEngagement opens a span for a like/follow/tag write
func (h *Handlers) traceEngagement(c *gin.Context, action, actorID, targetID string) (context.Context, trace.Span) {
	return h.events.TraceEngagement(c.Request.Context(), action, actorID, targetID)
}

// finishSpan records err on span and ends it
func finishSpan(span trace.Span, err error) {
	if err != nil {
		telemetry.RecordError(span, err)
	}
	span.End()
}

// readUpload opens the multipart "file" field after checking its name and size
func readUpload(c *gin.Context) (multipart.File, *multipart.FileHeader, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, nil, apperrors.InvalidInput("file", "multipart field 'file' is required")
	}
	if err := util.ValidateFilename(header.Filename); err != nil {
		return nil, nil, apperrors.InvalidInput("file", err.Error())
	}
	if !util.IsValidMediaFile(header.Filename) {
		return nil, nil, apperrors.InvalidInput("file", "only image and video uploads are supported")
	}
	if header.Size > maxUploadBytes {
		return nil, nil, apperrors.InvalidInput("file", "file exceeds 50MB")
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, apperrors.Backend("open upload", err)
	}
	return file, header, nil
}
