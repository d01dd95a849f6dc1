package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
	"github.com/fexraizen/lister-sub001/internal/domain/repository"
	"github.com/fexraizen/lister-sub001/pkg/errors"
)

// firestoreWalletRepository keeps one wallet document per settlement
// account, keyed by the account id, so balance movements address documents
// directly inside transactions.
type firestoreWalletRepository struct {
	client *firestore.Client
}

func NewFirestoreWalletRepository(client *firestore.Client) repository.Ledger {
	return &firestoreWalletRepository{
		client: client,
	}
}

func (r *firestoreWalletRepository) BalanceOf(ctx context.Context, accountID string) (float64, error) {
	doc, err := r.client.Collection("wallets").Doc(accountID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return 0, nil
		}
		return 0, errors.Internal("Failed to get wallet", err)
	}

	var wallet entity.Wallet
	if err := doc.DataTo(&wallet); err != nil {
		return 0, errors.Internal("Failed to parse wallet data", err)
	}

	return wallet.Balance, nil
}

func (r *firestoreWalletRepository) Credit(ctx context.Context, accountID string, amount float64) error {
	return r.apply(ctx, accountID, amount)
}

func (r *firestoreWalletRepository) Debit(ctx context.Context, accountID string, amount float64) error {
	return r.apply(ctx, accountID, -amount)
}

// apply adjusts a single balance inside a transaction; the balance never
// goes negative.
func (r *firestoreWalletRepository) apply(ctx context.Context, accountID string, delta float64) error {
	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		docRef := r.client.Collection("wallets").Doc(accountID)

		wallet, err := readWalletTx(tx, docRef, accountID)
		if err != nil {
			return err
		}

		wallet.Balance += delta
		if wallet.Balance < 0 {
			return errors.InsufficientFunds("Balance does not cover the requested amount")
		}

		now := time.Now()
		wallet.LastTxnAt = now
		wallet.UpdatedAt = now
		return tx.Set(docRef, wallet)
	})
}

func (r *firestoreWalletRepository) Transfer(ctx context.Context, from, to string, amount float64) error {
	if amount <= 0 {
		return errors.BadRequest("Transfer amount must be greater than 0", nil)
	}

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		fromRef := r.client.Collection("wallets").Doc(from)
		toRef := r.client.Collection("wallets").Doc(to)

		fromWallet, err := readWalletTx(tx, fromRef, from)
		if err != nil {
			return err
		}
		toWallet, err := readWalletTx(tx, toRef, to)
		if err != nil {
			return err
		}

		if fromWallet.Balance < amount {
			return errors.InsufficientFunds("Balance does not cover the requested amount")
		}

		now := time.Now()
		fromWallet.Balance -= amount
		fromWallet.LastTxnAt = now
		fromWallet.UpdatedAt = now
		toWallet.Balance += amount
		toWallet.LastTxnAt = now
		toWallet.UpdatedAt = now

		if err := tx.Set(fromRef, fromWallet); err != nil {
			return err
		}
		return tx.Set(toRef, toWallet)
	})
}

// readWalletTx reads a wallet within a transaction, materializing an empty
// wallet for accounts that have never transacted.
func readWalletTx(tx *firestore.Transaction, docRef *firestore.DocumentRef, accountID string) (*entity.Wallet, error) {
	doc, err := tx.Get(docRef)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			now := time.Now()
			return &entity.Wallet{
				AccountID: accountID,
				Balance:   0,
				CreatedAt: now,
				UpdatedAt: now,
			}, nil
		}
		return nil, err
	}

	var wallet entity.Wallet
	if err := doc.DataTo(&wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}
