package repository

import (
	"context"
)

// Ledger is the balance-of-record collaborator. The core never mutates a
// balance except through it. Accounts are user IDs or shop IDs.
type Ledger interface {
	// BalanceOf returns 0 for accounts without a wallet yet.
	BalanceOf(ctx context.Context, accountID string) (float64, error)
	Credit(ctx context.Context, accountID string, amount float64) error
	// Debit fails with INSUFFICIENT_FUNDS rather than letting the balance
	// go negative.
	Debit(ctx context.Context, accountID string, amount float64) error
	// Transfer debits from and credits to atomically.
	Transfer(ctx context.Context, from, to string, amount float64) error
}
