package router

import (
	"github.com/labstack/echo/v4"

	"github.com/fexraizen/lister-sub001/internal/adapter/api/handler"
	"github.com/fexraizen/lister-sub001/internal/adapter/api/middleware"
)

func SetupShopRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	shopHandler := handler.GetShopHandler()
	listingHandler := handler.GetListingHandler()

	shops := e.Group("/v1/shops")
	shops.GET("/:id", shopHandler.GetShop)
	shops.GET("/:id/listings", listingHandler.ListShopListings)

	managed := e.Group("/v1/shops")
	managed.Use(authMiddleware.Authenticate)
	managed.POST("", shopHandler.CreateShop)
	managed.PUT("/:id", shopHandler.UpdateShop)
	managed.DELETE("/:id", shopHandler.DeleteShop)
	managed.GET("/:id/members", shopHandler.ListMembers)
	managed.POST("/:id/members", shopHandler.AddMember)
	managed.DELETE("/:id/members/:userId", shopHandler.RemoveMember)

	myShops := e.Group("/v1/my-shops")
	myShops.Use(authMiddleware.Authenticate)
	myShops.GET("", shopHandler.ListMyShops)
}
