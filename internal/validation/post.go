package validation

import (
	"strings"

	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/models"
)

// ValidatePost normalizes blank optional fields to nil, lowercases the
// language and enforces the content invariants of a post:
//   - at least one of content, code snippet, media URL is non-empty
//   - language is set iff a code snippet is
//   - media type is set iff a media URL is, and is image or video
func ValidatePost(p *models.Post) error {
	p.Content = strings.TrimSpace(p.Content)
	if p.CodeSnippet != nil && strings.TrimSpace(*p.CodeSnippet) == "" {
		p.CodeSnippet = nil
	}
	p.Language = blankToNil(p.Language)
	if p.Language != nil {
		lang := strings.ToLower(*p.Language)
		p.Language = &lang
	}
	p.MediaURL = blankToNil(p.MediaURL)
	if p.MediaType != nil && *p.MediaType == "" {
		p.MediaType = nil
	}

	if p.Content == "" && p.CodeSnippet == nil && p.MediaURL == nil {
		return apperrors.InvalidInput("content", "post must have content, a code snippet or media")
	}

	if (p.CodeSnippet == nil) != (p.Language == nil) {
		if p.CodeSnippet == nil {
			return apperrors.InvalidInput("language", "language requires a code snippet")
		}
		return apperrors.InvalidInput("language", "code snippet requires a language")
	}

	if (p.MediaURL == nil) != (p.MediaType == nil) {
		if p.MediaURL == nil {
			return apperrors.InvalidInput("media_type", "media type requires a media URL")
		}
		return apperrors.InvalidInput("media_type", "media URL requires a media type")
	}
	if p.MediaType != nil && !p.MediaType.Valid() {
		return apperrors.InvalidInput("media_type", "media type must be image or video")
	}

	return nil
}

// blankToNil trims s. Code snippets are stored verbatim and never pass
// through here.
func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
