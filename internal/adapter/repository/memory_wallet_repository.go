package repository

import (
	"context"
	"time"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
	"github.com/fexraizen/lister-sub001/pkg/errors"
)

type memoryWalletRepository struct {
	store *MemoryStore
}

func (r *memoryWalletRepository) BalanceOf(ctx context.Context, accountID string) (float64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	wallet, ok := r.store.wallets[accountID]
	if !ok {
		return 0, nil
	}
	return wallet.Balance, nil
}

func (r *memoryWalletRepository) Credit(ctx context.Context, accountID string, amount float64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return applyLocked(r.store, accountID, amount)
}

func (r *memoryWalletRepository) Debit(ctx context.Context, accountID string, amount float64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return applyLocked(r.store, accountID, -amount)
}

func (r *memoryWalletRepository) Transfer(ctx context.Context, from, to string, amount float64) error {
	if amount <= 0 {
		return errors.BadRequest("Transfer amount must be greater than 0", nil)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	fromWallet := walletLocked(r.store, from)
	if fromWallet.Balance < amount {
		return errors.InsufficientFunds("Balance does not cover the requested amount")
	}

	if err := applyLocked(r.store, from, -amount); err != nil {
		return err
	}
	return applyLocked(r.store, to, amount)
}

// walletLocked returns the stored wallet for an account, materializing an
// empty one on first touch. Callers must hold the store lock.
func walletLocked(s *MemoryStore, accountID string) *entity.Wallet {
	wallet, ok := s.wallets[accountID]
	if !ok {
		now := time.Now()
		wallet = &entity.Wallet{
			AccountID: accountID,
			Balance:   0,
			CreatedAt: now,
			UpdatedAt: now,
		}
		s.wallets[accountID] = wallet
	}
	return wallet
}

func applyLocked(s *MemoryStore, accountID string, delta float64) error {
	wallet := walletLocked(s, accountID)
	if wallet.Balance+delta < 0 {
		return errors.InsufficientFunds("Balance does not cover the requested amount")
	}

	now := time.Now()
	wallet.Balance += delta
	wallet.LastTxnAt = now
	wallet.UpdatedAt = now
	return nil
}
