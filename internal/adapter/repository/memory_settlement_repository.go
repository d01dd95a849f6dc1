package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
	"github.com/fexraizen/lister-sub001/pkg/errors"
)

// memorySettlementRepository holds the store write lock for the whole
// settlement, so concurrent purchases of the same listing serialize and
// exactly one commits.
type memorySettlementRepository struct {
	store *MemoryStore
}

func (r *memorySettlementRepository) Settle(ctx context.Context, listingID, buyerID string, expectedPrice float64) (*entity.Receipt, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	listing, ok := r.store.listings[listingID]
	if !ok {
		return nil, errors.NotFound("Listing not found", nil)
	}

	if listing.Status == entity.StatusSold {
		return nil, errors.AlreadySold("Listing has already been sold")
	}
	if listing.Status != entity.StatusActive {
		return nil, errors.ForbiddenReason(errors.ReasonNotActive, "Listing is not active")
	}
	if listing.Price != expectedPrice {
		return nil, errors.PriceMismatch("Listing price has changed")
	}
	if listing.OwnerID == buyerID {
		return nil, errors.ForbiddenReason(errors.ReasonSelfPurchase, "Cannot purchase own listing")
	}

	buyerWallet := walletLocked(r.store, buyerID)
	if buyerWallet.Balance < listing.Price {
		return nil, errors.InsufficientFunds("Balance does not cover the listing price")
	}
	sellerWallet := walletLocked(r.store, listing.SellerAccountID())

	now := time.Now()
	buyerWallet.Balance -= listing.Price
	buyerWallet.LastTxnAt = now
	buyerWallet.UpdatedAt = now
	sellerWallet.Balance += listing.Price
	sellerWallet.LastTxnAt = now
	sellerWallet.UpdatedAt = now

	listing.Status = entity.StatusSold
	listing.UpdatedAt = now

	receipt := &entity.Receipt{
		ID:        uuid.New().String(),
		ListingID: listing.ID,
		BuyerID:   buyerID,
		SellerID:  listing.OwnerID,
		ShopID:    listing.ShopID,
		Price:     listing.Price,
		CreatedAt: now,
	}
	r.store.receipts[receipt.ID] = cloneReceipt(receipt)

	return receipt, nil
}
