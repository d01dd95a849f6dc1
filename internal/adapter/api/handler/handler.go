package handler

import (
	"github.com/fexraizen/lister-sub001/internal/usecase"
)

var (
	userHandler     *UserHandler
	listingHandler  *ListingHandler
	shopHandler     *ShopHandler
	purchaseHandler *PurchaseHandler
	walletHandler   *WalletHandler
)

func Setup(
	userUseCase *usecase.UserUseCase,
	listingUseCase *usecase.ListingUseCase,
	shopUseCase *usecase.ShopUseCase,
	purchaseUseCase *usecase.PurchaseUseCase,
	walletUseCase *usecase.WalletUseCase,
) {
	userHandler = NewUserHandler(userUseCase)
	listingHandler = NewListingHandler(listingUseCase)
	shopHandler = NewShopHandler(shopUseCase)
	purchaseHandler = NewPurchaseHandler(purchaseUseCase)
	walletHandler = NewWalletHandler(walletUseCase)
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetListingHandler() *ListingHandler {
	return listingHandler
}

func GetShopHandler() *ShopHandler {
	return shopHandler
}

func GetPurchaseHandler() *PurchaseHandler {
	return purchaseHandler
}

func GetWalletHandler() *WalletHandler {
	return walletHandler
}
