package usecase

import (
	"context"
	"fmt"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
	"github.com/fexraizen/lister-sub001/internal/domain/repository"
	"github.com/fexraizen/lister-sub001/internal/domain/service"
	"github.com/fexraizen/lister-sub001/pkg/errors"
	"github.com/fexraizen/lister-sub001/pkg/logger"
)

type PurchaseUseCase struct {
	listingRepo    repository.ListingRepository
	receiptRepo    repository.ReceiptRepository
	settlementRepo repository.SettlementRepository
	userRepo       repository.UserRepository
	resolver       *service.Resolver
	notifier       Notifier
}

func NewPurchaseUseCase(
	listingRepo repository.ListingRepository,
	receiptRepo repository.ReceiptRepository,
	settlementRepo repository.SettlementRepository,
	userRepo repository.UserRepository,
	resolver *service.Resolver,
	notifier Notifier,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		listingRepo:    listingRepo,
		receiptRepo:    receiptRepo,
		settlementRepo: settlementRepo,
		userRepo:       userRepo,
		resolver:       resolver,
		notifier:       notifier,
	}
}

// Purchase settles a listing for the buyer. Preconditions run in order and
// the first failure wins: listing exists, the client-shown price still
// matches, and the resolver permits the purchase. The checks are advisory;
// the settlement repository re-validates everything inside its transaction,
// so a racing buyer who passed the checks on a stale read still fails with
// ALREADY_SOLD.
func (uc *PurchaseUseCase) Purchase(ctx context.Context, actorID, listingID string, expectedPrice float64) (*entity.Receipt, error) {
	actor, err := loadActor(ctx, uc.userRepo, actorID)
	if err != nil {
		return nil, err
	}

	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if expectedPrice != listing.Price {
		return nil, errors.PriceMismatch("Listing price has changed since it was displayed")
	}

	if listing.Status == entity.StatusSold {
		return nil, errors.AlreadySold("Listing has already been sold")
	}

	if err := uc.resolver.DenyPurchase(ctx, actor, listing); err != nil {
		return nil, err
	}

	receipt, err := uc.settlementRepo.Settle(ctx, listingID, actor.ID, expectedPrice)
	if err != nil {
		return nil, err
	}

	// Notification intents are fire-and-forget relative to the settlement:
	// the money has moved and the listing is sold whether or not these land.
	go uc.notifyParties(receipt, listing.Title)

	return receipt, nil
}

func (uc *PurchaseUseCase) notifyParties(receipt *entity.Receipt, title string) {
	uc.notifier.Notify(
		receipt.BuyerID,
		"Purchase confirmed",
		fmt.Sprintf("You bought %q for %.2f", title, receipt.Price),
	)
	uc.notifier.Notify(
		receipt.SellerID,
		"Listing sold",
		fmt.Sprintf("%q sold for %.2f", title, receipt.Price),
	)
	logger.Info("Purchase settled: receipt=%s listing=%s buyer=%s seller=%s price=%.2f",
		receipt.ID, receipt.ListingID, receipt.BuyerID, receipt.SellerID, receipt.Price)
}

func (uc *PurchaseUseCase) GetReceipt(ctx context.Context, actorID, receiptID string) (*entity.Receipt, error) {
	actor, err := loadActor(ctx, uc.userRepo, actorID)
	if err != nil {
		return nil, err
	}

	receipt, err := uc.receiptRepo.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	if receipt.BuyerID != actor.ID && receipt.SellerID != actor.ID && !actor.Elevated() {
		return nil, errors.Forbidden("You don't have permission to view this receipt", nil)
	}

	return receipt, nil
}

func (uc *PurchaseUseCase) ListPurchases(ctx context.Context, actorID string, limit, offset int) ([]entity.Receipt, int64, error) {
	return uc.receiptRepo.ListByBuyerID(ctx, actorID, limit, offset)
}

func (uc *PurchaseUseCase) ListSales(ctx context.Context, actorID string, limit, offset int) ([]entity.Receipt, int64, error) {
	return uc.receiptRepo.ListBySellerID(ctx, actorID, limit, offset)
}
