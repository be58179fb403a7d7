package router

import (
	"github.com/labstack/echo/v4"

	"wardrobe101/internal/adapter/api/handler"
	"wardrobe101/internal/adapter/api/middleware"
)

// SetupWebSocketRouter mounts the chat socket. Browsers cannot set headers on an upgrade,
// so the token comes in the query string.
func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler, authMiddleware *middleware.AuthMiddleware) {
	e.GET("/ws/chat", wsHandler.HandleWebSocket, authMiddleware.AuthenticateWebSocket)
}
