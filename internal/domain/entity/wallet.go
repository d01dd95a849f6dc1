package entity

import (
	"time"
)

// Wallet is the balance of record for a settlement account. AccountID is a
// user ID for personal balances or a shop ID for shop settlement accounts.
type Wallet struct {
	AccountID string    `json:"account_id" firestore:"accountId"`
	Balance   float64   `json:"balance" firestore:"balance"`
	LastTxnAt time.Time `json:"last_txn_at" firestore:"lastTxnAt"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" firestore:"updatedAt"`
}

// Receipt is the audit record of a settled purchase.
type Receipt struct {
	ID        string    `json:"id" firestore:"id"`
	ListingID string    `json:"listing_id" firestore:"listingId"`
	BuyerID   string    `json:"buyer_id" firestore:"buyerId"`
	SellerID  string    `json:"seller_id" firestore:"sellerId"`
	ShopID    string    `json:"shop_id,omitempty" firestore:"shopId,omitempty"`
	Price     float64   `json:"price" firestore:"price"`
	CreatedAt time.Time `json:"created_at" firestore:"createdAt"`
}
