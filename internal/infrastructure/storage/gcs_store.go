package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"wardrobe101/internal/domain/service"
	"wardrobe101/pkg/logger"
)

const gcsPublicHost = "https://storage.googleapis.com/"

type GCSImageStore struct {
	client     *storage.Client
	bucketName string
}

func NewGCSImageStore(ctx context.Context, bucketName, credentialsPath string) (*GCSImageStore, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	store := &GCSImageStore{
		client:     client,
		bucketName: bucketName,
	}

	if err := store.setBucketCORS(ctx); err != nil {
		logger.Warn("Failed to set CORS configuration: %v", err)
	}

	return store, nil
}

var _ service.ImageStore = (*GCSImageStore)(nil)

func (s *GCSImageStore) setBucketCORS(ctx context.Context) error {
	bucket := s.client.Bucket(s.bucketName)

	bucketAttrs, err := bucket.Attrs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bucket attributes: %w", err)
	}
	if len(bucketAttrs.CORS) > 0 {
		return nil
	}

	_, err = bucket.Update(ctx, storage.BucketAttrsToUpdate{
		CORS: []storage.CORS{{
			MaxAge:          time.Hour,
			Methods:         []string{"GET", "OPTIONS"},
			Origins:         []string{"*"},
			ResponseHeaders: []string{"Content-Type"},
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to update bucket CORS: %w", err)
	}
	return nil
}

// Save writes a public listing photo and returns its storage.googleapis.com URL.
func (s *GCSImageStore) Save(ctx context.Context, file io.Reader, contentType, folder string) (string, error) {
	name := objectName("public/"+folder, contentType, time.Now())

	obj := s.client.Bucket(s.bucketName).Object(name)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(wc, file); err != nil {
		wc.Close()
		return "", fmt.Errorf("failed to copy file to GCS: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("failed to set ACL: %w", err)
	}

	return gcsPublicHost + s.bucketName + "/" + name, nil
}

func (s *GCSImageStore) Delete(ctx context.Context, fileURL string) error {
	objectName, err := s.objectFromURL(fileURL)
	if err != nil {
		return err
	}
	if err := s.client.Bucket(s.bucketName).Object(objectName).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// objectFromURL expects https://storage.googleapis.com/<bucket>/<object>.
func (s *GCSImageStore) objectFromURL(fileURL string) (string, error) {
	if !strings.HasPrefix(fileURL, gcsPublicHost) {
		return "", fmt.Errorf("invalid GCS URL format")
	}
	parts := strings.SplitN(strings.TrimPrefix(fileURL, gcsPublicHost), "/", 2)
	if len(parts) != 2 || parts[0] != s.bucketName {
		return "", fmt.Errorf("invalid GCS URL format or bucket mismatch")
	}
	return parts[1], nil
}

func (s *GCSImageStore) Close() error {
	return s.client.Close()
}
