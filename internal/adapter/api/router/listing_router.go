package router

import (
	"github.com/labstack/echo/v4"

	"github.com/fexraizen/lister-sub001/internal/adapter/api/handler"
	"github.com/fexraizen/lister-sub001/internal/adapter/api/middleware"
)

func SetupListingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimitMiddleware *middleware.RateLimitMiddleware) {
	listingHandler := handler.GetListingHandler()

	listings := e.Group("/v1/listings")
	listings.GET("", listingHandler.BrowseListings)

	listingDetail := e.Group("/v1/listings")
	listingDetail.Use(authMiddleware.OptionalAuthenticate)
	listingDetail.GET("/:id", listingHandler.GetListing)
	listingDetail.GET("/:id/permissions", listingHandler.GetPermissions)

	myListings := e.Group("/v1/my-listings")
	myListings.Use(authMiddleware.Authenticate)
	myListings.GET("", listingHandler.ListMyListings)
	myListings.POST("", listingHandler.CreateListing)
	myListings.PUT("/:id", listingHandler.UpdateListing)
	myListings.DELETE("/:id", listingHandler.DeleteListing)
	myListings.PATCH("/:id/status", listingHandler.ChangeStatus)
	myListings.POST("/:id/boost", listingHandler.BoostListing, rateLimitMiddleware.Limit("boost"))
	myListings.POST("/:id/transfer", listingHandler.TransferToShop)
}
