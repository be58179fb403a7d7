package router

import (
	"github.com/labstack/echo/v4"

	"wardrobe101/internal/adapter/api/handler"
)

func SetupAuthRouter(api *echo.Group) {
	authHandler := handler.GetAuthHandler()

	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/signup", authHandler.Signup)
}
