package repository

import (
	"context"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
)

type ReceiptRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Receipt, error)
	ListByBuyerID(ctx context.Context, buyerID string, limit, offset int) ([]entity.Receipt, int64, error)
	ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]entity.Receipt, int64, error)
}
