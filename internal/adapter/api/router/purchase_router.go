package router

import (
	"github.com/labstack/echo/v4"

	"github.com/fexraizen/lister-sub001/internal/adapter/api/handler"
	"github.com/fexraizen/lister-sub001/internal/adapter/api/middleware"
)

func SetupPurchaseRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	purchaseHandler := handler.GetPurchaseHandler()

	purchases := e.Group("/v1/purchases")
	purchases.Use(authMiddleware.Authenticate)
	purchases.POST("", purchaseHandler.Purchase, rateLimitMiddleware.Limit("purchase"))
	purchases.GET("", purchaseHandler.ListPurchases)

	sales := e.Group("/v1/sales")
	sales.Use(authMiddleware.Authenticate)
	sales.GET("", purchaseHandler.ListSales)

	receipts := e.Group("/v1/receipts")
	receipts.Use(authMiddleware.Authenticate)
	receipts.GET("/:id", purchaseHandler.GetReceipt)
}
