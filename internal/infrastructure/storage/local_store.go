package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wardrobe101/internal/domain/service"
)

// LocalImageStore writes uploads under a directory that the dev API serves statically
// at /uploads.
type LocalImageStore struct {
	root    string
	baseURL string
}

func NewLocalImageStore(root, publicBaseURL string) (*LocalImageStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalImageStore{
		root:    root,
		baseURL: strings.TrimRight(publicBaseURL, "/") + "/uploads/",
	}, nil
}

var _ service.ImageStore = (*LocalImageStore)(nil)

func (s *LocalImageStore) Save(ctx context.Context, file io.Reader, contentType, folder string) (string, error) {
	name := objectName(folder, contentType, time.Now())
	target := filepath.Join(s.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create folder: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, file); err != nil {
		f.Close()
		os.Remove(target)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return s.baseURL + name, nil
}

func (s *LocalImageStore) Delete(ctx context.Context, fileURL string) error {
	if !strings.HasPrefix(fileURL, s.baseURL) {
		return fmt.Errorf("file %s is not served by this store", fileURL)
	}
	name := strings.TrimPrefix(fileURL, s.baseURL)
	if strings.Contains(name, "..") {
		return fmt.Errorf("invalid file path %s", name)
	}
	return os.Remove(filepath.Join(s.root, filepath.FromSlash(name)))
}

func (s *LocalImageStore) Close() error {
	return nil
}
