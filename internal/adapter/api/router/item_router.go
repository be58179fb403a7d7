package router

import (
	"github.com/labstack/echo/v4"

	"wardrobe101/internal/adapter/api/handler"
	"wardrobe101/internal/adapter/api/middleware"
)

func SetupItemRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	itemHandler := handler.GetItemHandler()

	api.GET("/items", itemHandler.ListItems)
	api.GET("/items/:id", itemHandler.GetItem)
	api.POST("/items", itemHandler.CreateItem, authMiddleware.Authenticate)
}
