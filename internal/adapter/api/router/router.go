package router

import (
	"github.com/labstack/echo/v4"

	"wardrobe101/internal/adapter/api/middleware"
)

// Setup mounts the marketplace API under /api.
func Setup(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	api := e.Group("/api")

	SetupAuthRouter(api)
	SetupUserRouter(api, authMiddleware)
	SetupItemRouter(api, authMiddleware)
	SetupOrderRouter(api, authMiddleware)
	SetupUploadRouter(api)
	SetupHealthRouter(e)
}
