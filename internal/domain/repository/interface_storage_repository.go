package repository

import (
	"context"
	"io"
)

// Storage buckets owned by the platform.
const (
	BucketBusinessImages     = "business-images"
	BucketEventImages        = "event-images"
	BucketProfilePictures    = "profile-pictures"
	BucketVerificationSelfie = "verification-selfies"
	BucketVoiceMessages      = "voice-messages"
)

// FileStorageRepository object storage for user uploads.
type FileStorageRepository interface {
	// Upload stores data under path in the bucket and returns the public URL.
	Upload(ctx context.Context, bucket, path, contentType string, data io.Reader) (string, error)
}
