package service

import (
	"context"
	"io"
)

// ImageStore persists uploaded listing photos and returns the public URL.
type ImageStore interface {
	Save(ctx context.Context, file io.Reader, contentType, folder string) (string, error)
	Delete(ctx context.Context, url string) error
	Close() error
}
