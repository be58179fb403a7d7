package router

import (
	"github.com/labstack/echo/v4"

	"wardrobe101/internal/adapter/api/handler"
	"wardrobe101/internal/adapter/api/middleware"
)

func SetupUserRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	userHandler := handler.GetUserHandler()

	api.GET("/users/me", userHandler.GetMe, authMiddleware.Authenticate)
	api.GET("/users/:id", userHandler.GetUser)
}
