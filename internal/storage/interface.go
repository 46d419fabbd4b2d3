package storage

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MediaUploader stores post media and avatars.
// This interface allows for easy mocking in tests.
type MediaUploader interface {
	UploadMedia(ctx context.Context, file io.Reader, header *multipart.FileHeader, userID string) (*UploadResult, error)
	UploadAvatar(ctx context.Context, file io.Reader, header *multipart.FileHeader, userID string) (*UploadResult, error)
}

// objectStore is the slice of the S3 API the uploader calls
type objectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, params *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Ensure S3Uploader implements MediaUploader
var _ MediaUploader = (*S3Uploader)(nil)
var _ objectStore = (*s3.Client)(nil)
