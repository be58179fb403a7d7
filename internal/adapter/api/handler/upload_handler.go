package handler

import (
	"github.com/labstack/echo/v4"

	"wardrobe101/internal/usecase"
	"wardrobe101/pkg/errors"
	"wardrobe101/pkg/logger"
	"wardrobe101/pkg/response"
)

type UploadHandler struct {
	uploadUseCase *usecase.UploadUseCase
}

func NewUploadHandler(uploadUseCase *usecase.UploadUseCase) *UploadHandler {
	return &UploadHandler{
		uploadUseCase: uploadUseCase,
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// UploadImage stores the multipart "file" field and returns its public URL.
func (h *UploadHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		logger.Debug("Upload without file field: %v", err)
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to open uploaded file", err))
	}
	defer src.Close()

	url, err := h.uploadUseCase.UploadImage(c.Request().Context(), src)
	if err != nil {
		return response.Error(c, err)
	}

	logger.Info("Stored upload %s (%d bytes)", url, file.Size)
	return response.Success(c, uploadResponse{URL: url})
}
