package repository

import (
	"context"
	"fmt"
	"io"

	storage_go "github.com/supabase-community/storage-go"

	"lusotown-backend/internal/database"
	"lusotown-backend/internal/domain/repository"
)

// SupabaseStorageRepository object storage backed by Supabase Storage buckets.
type SupabaseStorageRepository struct {
	client *database.SupabaseClient
}

func NewSupabaseStorageRepository(client *database.SupabaseClient) repository.FileStorageRepository {
	return &SupabaseStorageRepository{
		client: client,
	}
}

func (r *SupabaseStorageRepository) Upload(ctx context.Context, bucket, path, contentType string, data io.Reader) (string, error) {
	options := storage_go.FileOptions{}
	if contentType != "" {
		options.ContentType = &contentType
	}

	_, err := r.client.GetClient().Storage.UploadFile(bucket, path, data, options)
	if err != nil {
		return "", fmt.Errorf("failed to upload file to bucket %s: %w", bucket, err)
	}

	publicURL := r.client.GetClient().Storage.GetPublicUrl(bucket, path)
	return publicURL.SignedURL, nil
}
