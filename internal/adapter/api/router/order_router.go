package router

import (
	"github.com/labstack/echo/v4"

	"wardrobe101/internal/adapter/api/handler"
	"wardrobe101/internal/adapter/api/middleware"
)

func SetupOrderRouter(api *echo.Group, authMiddleware *middleware.AuthMiddleware) {
	orderHandler := handler.GetOrderHandler()

	orders := api.Group("/orders")
	orders.Use(authMiddleware.Authenticate)

	orders.GET("", orderHandler.ListOrders)
	orders.POST("", orderHandler.PlaceOrder)
}
