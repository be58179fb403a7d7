package router

import (
	"github.com/labstack/echo/v4"

	"wardrobe101/internal/adapter/api/handler"
)

// SetupUploadRouter leaves uploads unauthenticated; the listing flow uploads before login.
func SetupUploadRouter(api *echo.Group) {
	uploadHandler := handler.GetUploadHandler()

	api.POST("/upload", uploadHandler.UploadImage)
}

// SetupStaticUploads serves files written by the local image store.
func SetupStaticUploads(e *echo.Echo, uploadDir string) {
	e.Static("/uploads", uploadDir)
}
