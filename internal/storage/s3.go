// Package storage uploads post media and avatars to S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	apperrors "github.com/pratyush0898/OnlyCodes/internal/errors"
	"github.com/pratyush0898/OnlyCodes/internal/logger"
	"github.com/pratyush0898/OnlyCodes/internal/models"
	"github.com/pratyush0898/OnlyCodes/internal/telemetry"
	"go.uber.org/zap"
)

const (
	prefixMedia   = "media"
	prefixAvatars = "avatars"
)

// S3Uploader handles media uploads to AWS S3
type S3Uploader struct {
	client  objectStore
	bucket  string
	region  string
	baseURL string
	now     func() time.Time
}

// UploadResult contains the result of an S3 upload
type UploadResult struct {
	Key       string           `json:"key"`
	URL       string           `json:"media_url"`
	MediaType models.MediaType `json:"media_type"`
	Size      int64            `json:"size"`
}

// NewS3Uploader creates a new S3 uploader. baseURL is the CDN origin for
// public URLs; when empty the bucket's virtual-hosted URL is used.
func NewS3Uploader(ctx context.Context, region, bucket, baseURL string) (*S3Uploader, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithHTTPClient(telemetry.NewHTTPClient("s3", 0)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return newS3Uploader(s3.NewFromConfig(cfg), region, bucket, baseURL), nil
}

func newS3Uploader(client objectStore, region, bucket, baseURL string) *S3Uploader {
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}
	return &S3Uploader{
		client:  client,
		bucket:  bucket,
		region:  region,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		now:     time.Now,
	}
}

// UploadMedia stores an image or video under media/{userID}/
func (u *S3Uploader) UploadMedia(ctx context.Context, file io.Reader, header *multipart.FileHeader, userID string) (*UploadResult, error) {
	return u.upload(ctx, prefixMedia, file, header, userID)
}

// UploadAvatar stores a profile picture under avatars/{userID}/. Only images are accepted.
func (u *S3Uploader) UploadAvatar(ctx context.Context, file io.Reader, header *multipart.FileHeader, userID string) (*UploadResult, error) {
	mediaType, _, err := classify(header)
	if err != nil {
		return nil, err
	}
	if mediaType != models.MediaTypeImage {
		return nil, apperrors.InvalidInput("file", "avatar must be an image")
	}
	return u.upload(ctx, prefixAvatars, file, header, userID)
}

func (u *S3Uploader) upload(ctx context.Context, prefix string, file io.Reader, header *multipart.FileHeader, userID string) (*UploadResult, error) {
	mediaType, contentType, err := classify(header)
	if err != nil {
		return nil, err
	}

	key := objectKey(prefix, userID, uuid.New().String(), header.Filename)
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          file,
		ContentLength: aws.Int64(header.Size),
		ContentType:   aws.String(contentType),
		// Keys are unique per upload so objects never change
		CacheControl: aws.String("max-age=31536000, immutable"),
		Metadata: map[string]string{
			"user-id":           userID,
			"original-filename": header.Filename,
			"upload-timestamp":  u.now().UTC().Format(time.RFC3339),
			"media-type":        string(mediaType),
		},
	})
	if err != nil {
		return nil, apperrors.Backend("upload media", err)
	}

	logger.Log.Info("Uploaded media",
		logger.WithUserID(userID),
		zap.String("key", key),
		zap.String("content_type", contentType),
		zap.Int64("size", header.Size),
	)

	return &UploadResult{
		Key:       key,
		URL:       u.publicURL(key),
		MediaType: mediaType,
		Size:      header.Size,
	}, nil
}

// DeleteFile deletes a file from S3
func (u *S3Uploader) DeleteFile(ctx context.Context, key string) error {
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}

// CheckBucketAccess verifies that we can access the S3 bucket
func (u *S3Uploader) CheckBucketAccess(ctx context.Context) error {
	_, err := u.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(u.bucket),
	})
	if err != nil {
		return fmt.Errorf("cannot access S3 bucket %s: %w", u.bucket, err)
	}
	return nil
}

func (u *S3Uploader) publicURL(key string) string {
	return u.baseURL + "/" + key
}

// objectKey builds {prefix}/{userID}/{id}{ext}
func objectKey(prefix, userID, id, filename string) string {
	return fmt.Sprintf("%s/%s/%s%s", prefix, userID, id, strings.ToLower(filepath.Ext(filename)))
}

// classify derives the media type from the declared content type, falling
// back to the file extension when the client sent none.
func classify(header *multipart.FileHeader) (models.MediaType, string, error) {
	contentType := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = getContentType(filepath.Ext(header.Filename))
	}

	mediaType, ok := mediaTypeFor(contentType)
	if !ok {
		return "", "", apperrors.InvalidInput("file", "only image and video uploads are supported")
	}
	return mediaType, contentType, nil
}

func mediaTypeFor(contentType string) (models.MediaType, bool) {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return models.MediaTypeImage, true
	case strings.HasPrefix(contentType, "video/"):
		return models.MediaTypeVideo, true
	default:
		return "", false
	}
}

// getContentType returns the MIME type for media file extensions
func getContentType(extension string) string {
	switch strings.ToLower(extension) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".mp4":
		return "video/mp4"
	case ".webm":
		return "video/webm"
	case ".mov":
		return "video/quicktime"
	default:
		return "application/octet-stream"
	}
}
