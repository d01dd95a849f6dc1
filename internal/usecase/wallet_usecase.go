package usecase

import (
	"context"

	"github.com/fexraizen/lister-sub001/internal/domain/repository"
	"github.com/fexraizen/lister-sub001/pkg/errors"
)

type WalletUseCase struct {
	ledger   repository.Ledger
	userRepo repository.UserRepository
}

func NewWalletUseCase(ledger repository.Ledger, userRepo repository.UserRepository) *WalletUseCase {
	return &WalletUseCase{
		ledger:   ledger,
		userRepo: userRepo,
	}
}

type BalanceOutput struct {
	AccountID string  `json:"account_id"`
	Balance   float64 `json:"balance"`
}

func (uc *WalletUseCase) GetBalance(ctx context.Context, accountID string) (*BalanceOutput, error) {
	balance, err := uc.ledger.BalanceOf(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &BalanceOutput{AccountID: accountID, Balance: balance}, nil
}

type TopupInput struct {
	Amount float64 `json:"amount"`
}

// Topup credits the account. Funds enter the system only here; everything
// else moves them between accounts.
func (uc *WalletUseCase) Topup(ctx context.Context, actorID string, input TopupInput) (*BalanceOutput, error) {
	if input.Amount <= 0 {
		return nil, errors.BadRequest("Amount must be greater than 0", nil)
	}

	if _, err := uc.userRepo.GetByID(ctx, actorID); err != nil {
		return nil, errors.NotFound("User", err)
	}

	if err := uc.ledger.Credit(ctx, actorID, input.Amount); err != nil {
		return nil, err
	}

	return uc.GetBalance(ctx, actorID)
}
