package repository

import (
	"context"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
)

// SettlementRepository executes the purchase critical section. Settle
// re-reads the listing under an exclusive transaction, verifies it is still
// active and priced at expectedPrice, moves the funds from the buyer to the
// seller account, marks the listing sold, and writes the receipt, all as
// one unit that commits or fails together.
//
// Typed failures: ALREADY_SOLD when the listing reached its terminal state
// first, PRICE_MISMATCH when the price changed since the caller read it,
// INSUFFICIENT_FUNDS when the buyer cannot cover the price, NOT_FOUND when
// the listing vanished. Concurrent Settle calls on the same listing
// serialize; exactly one commits.
type SettlementRepository interface {
	Settle(ctx context.Context, listingID, buyerID string, expectedPrice float64) (*entity.Receipt, error)
}
