package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
	"github.com/fexraizen/lister-sub001/internal/domain/repository"
	"github.com/fexraizen/lister-sub001/pkg/errors"
)

// firestoreSettlementRepository performs the whole purchase inside one
// Firestore transaction so the status flip, the balance movement and the
// receipt either all land or none do.
type firestoreSettlementRepository struct {
	client *firestore.Client
}

func NewFirestoreSettlementRepository(client *firestore.Client) repository.SettlementRepository {
	return &firestoreSettlementRepository{
		client: client,
	}
}

func (r *firestoreSettlementRepository) Settle(ctx context.Context, listingID, buyerID string, expectedPrice float64) (*entity.Receipt, error) {
	var receipt *entity.Receipt

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		listingRef := r.client.Collection("listings").Doc(listingID)

		doc, err := tx.Get(listingRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Listing not found", err)
			}
			return errors.Internal("Failed to get listing", err)
		}

		var listing entity.Listing
		if err := doc.DataTo(&listing); err != nil {
			return errors.Internal("Failed to parse listing data", err)
		}
		listing.ID = doc.Ref.ID

		if listing.Status == entity.StatusSold {
			return errors.AlreadySold("Listing has already been sold")
		}
		if listing.Status != entity.StatusActive {
			return errors.ForbiddenReason(errors.ReasonNotActive, "Listing is not active")
		}
		if listing.Price != expectedPrice {
			return errors.PriceMismatch("Listing price has changed")
		}
		if listing.OwnerID == buyerID {
			return errors.ForbiddenReason(errors.ReasonSelfPurchase, "Cannot purchase own listing")
		}

		buyerRef := r.client.Collection("wallets").Doc(buyerID)
		sellerAccount := listing.SellerAccountID()
		sellerRef := r.client.Collection("wallets").Doc(sellerAccount)

		buyerWallet, err := readWalletTx(tx, buyerRef, buyerID)
		if err != nil {
			return errors.Internal("Failed to get buyer wallet", err)
		}
		sellerWallet, err := readWalletTx(tx, sellerRef, sellerAccount)
		if err != nil {
			return errors.Internal("Failed to get seller wallet", err)
		}

		if buyerWallet.Balance < listing.Price {
			return errors.InsufficientFunds("Balance does not cover the listing price")
		}

		now := time.Now()
		buyerWallet.Balance -= listing.Price
		buyerWallet.LastTxnAt = now
		buyerWallet.UpdatedAt = now
		sellerWallet.Balance += listing.Price
		sellerWallet.LastTxnAt = now
		sellerWallet.UpdatedAt = now

		if err := tx.Set(buyerRef, buyerWallet); err != nil {
			return err
		}
		if err := tx.Set(sellerRef, sellerWallet); err != nil {
			return err
		}

		if err := tx.Update(listingRef, []firestore.Update{
			{Path: "status", Value: entity.StatusSold},
			{Path: "updatedAt", Value: now},
		}); err != nil {
			return err
		}

		receipt = &entity.Receipt{
			ID:        uuid.New().String(),
			ListingID: listing.ID,
			BuyerID:   buyerID,
			SellerID:  listing.OwnerID,
			ShopID:    listing.ShopID,
			Price:     listing.Price,
			CreatedAt: now,
		}
		return tx.Create(r.client.Collection("receipts").Doc(receipt.ID), receipt)
	})
	if err != nil {
		return nil, err
	}

	return receipt, nil
}
