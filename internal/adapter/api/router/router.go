package router

import (
	"github.com/labstack/echo/v4"

	"github.com/fexraizen/lister-sub001/internal/adapter/api/middleware"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	adminMiddleware *middleware.AdminMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) {
	SetupUserRouter(e, authMiddleware, adminMiddleware)
	SetupListingRouter(e, authMiddleware, rateLimitMiddleware)
	SetupShopRouter(e, authMiddleware)
	SetupPurchaseRouter(e, authMiddleware, rateLimitMiddleware)
	SetupWalletRouter(e, authMiddleware)
	SetupHealthRouter(e)
}
