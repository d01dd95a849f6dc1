package router

import (
	"github.com/labstack/echo/v4"

	"github.com/fexraizen/lister-sub001/internal/adapter/api/handler"
	"github.com/fexraizen/lister-sub001/internal/adapter/api/middleware"
)

func SetupWebSocketRouter(e *echo.Echo, wsHandler *handler.WebSocketHandler, authMiddleware *middleware.AuthMiddleware) {
	ws := e.Group("/v1/ws")
	ws.Use(authMiddleware.OptionalAuthenticate)
	ws.GET("", wsHandler.HandleWebSocket)
}
