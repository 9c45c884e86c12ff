package supabase

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

const listPageSize = 1000

type StorageClient struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewStorageClient(supabaseURL, apiKey, bucket string) *StorageClient {
	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", apiKey, nil)

	return &StorageClient{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}
}

// Upload stores data at path in the photos bucket and returns its public URL.
func (s *StorageClient) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	upsert := false
	_, err := s.client.UploadFile(s.bucket, path, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return s.PublicURL(path), nil
}

func (s *StorageClient) PublicURL(path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, path)
}

// DeletePrefix removes every object directly below prefix and in its
// immediate subfolders (originals/ and thumbnails/).
func (s *StorageClient) DeletePrefix(ctx context.Context, prefix string) error {
	prefix = strings.TrimSuffix(prefix, "/")

	paths, err := s.listRecursive(ctx, prefix, 2)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}

	if _, err := s.client.RemoveFile(s.bucket, paths); err != nil {
		return fmt.Errorf("failed to delete files: %w", err)
	}
	return nil
}

// listRecursive lists object paths under prefix. Storage returns folders as
// entries without an id, which are descended into up to depth levels.
func (s *StorageClient) listRecursive(ctx context.Context, prefix string, depth int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := s.client.ListFiles(s.bucket, prefix, storage.FileSearchOptions{
		Limit: listPageSize,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	var paths []string
	for _, file := range files {
		full := prefix + "/" + file.Name
		if file.Id == "" {
			if depth > 0 {
				nested, err := s.listRecursive(ctx, full, depth-1)
				if err != nil {
					return nil, err
				}
				paths = append(paths, nested...)
			}
			continue
		}
		paths = append(paths, full)
	}
	return paths, nil
}
