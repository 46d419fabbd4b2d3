package util

import (
	"errors"
	"path/filepath"
	"strings"
)

// allowedMediaExts are the upload extensions accepted for post media and avatars
var allowedMediaExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".mp4":  true,
	".webm": true,
	".mov":  true,
}

// IsValidMediaFile checks if a filename has an image or video extension
func IsValidMediaFile(filename string) bool {
	return allowedMediaExts[strings.ToLower(filepath.Ext(filename))]
}

// ValidateFilename checks if an uploaded filename is usable.
// It is required, cannot contain directory separators and must be <= 255 chars.
func ValidateFilename(filename string) error {
	if filename == "" {
		return errors.New("filename is required")
	}
	if strings.Contains(filename, "/") || strings.Contains(filename, "\\") {
		return errors.New("filename cannot contain directory paths")
	}
	if len(filename) > 255 {
		return errors.New("filename too long (max 255 characters)")
	}
	return nil
}
