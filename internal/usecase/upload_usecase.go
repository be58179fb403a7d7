package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"

	"wardrobe101/internal/domain/service"
	"wardrobe101/pkg/errors"
	"wardrobe101/pkg/logger"
)

const listingImageFolder = "listings"

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

// UploadUseCase stores listing photos. The content type is sniffed from the bytes;
// the client supplied header is not trusted.
type UploadUseCase struct {
	store    service.ImageStore
	maxBytes int64
}

func NewUploadUseCase(store service.ImageStore, maxBytes int64) *UploadUseCase {
	return &UploadUseCase{store: store, maxBytes: maxBytes}
}

func (uc *UploadUseCase) UploadImage(ctx context.Context, file io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(file, uc.maxBytes+1))
	if err != nil {
		return "", errors.Internal("Unable to read file", err)
	}
	if len(data) == 0 {
		return "", errors.BadRequest("File is empty", nil)
	}
	if int64(len(data)) > uc.maxBytes {
		return "", errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", uc.maxBytes/(1024*1024)), nil)
	}

	mime := mimetype.Detect(data)
	if !mimetype.EqualsAny(mime.String(), allowedImageTypes...) {
		logger.Warn("Rejected upload with type %s", mime.String())
		return "", errors.BadRequest("File type not supported", nil)
	}

	url, err := uc.store.Save(ctx, bytes.NewReader(data), mime.String(), listingImageFolder)
	if err != nil {
		return "", errors.Internal("Failed to upload file", err)
	}
	logger.Debug("Stored %d byte %s upload at %s", len(data), mime.String(), url)
	return url, nil
}
