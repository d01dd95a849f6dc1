package repository

import (
	"context"
	"sort"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
	"github.com/fexraizen/lister-sub001/pkg/errors"
)

type memoryReceiptRepository struct {
	store *MemoryStore
}

func (r *memoryReceiptRepository) GetByID(ctx context.Context, id string) (*entity.Receipt, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	receipt, ok := r.store.receipts[id]
	if !ok {
		return nil, errors.NotFound("Receipt not found", nil)
	}
	return cloneReceipt(receipt), nil
}

func (r *memoryReceiptRepository) ListByBuyerID(ctx context.Context, buyerID string, limit, offset int) ([]entity.Receipt, int64, error) {
	return r.list(func(receipt *entity.Receipt) bool {
		return receipt.BuyerID == buyerID
	}, limit, offset)
}

func (r *memoryReceiptRepository) ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]entity.Receipt, int64, error) {
	return r.list(func(receipt *entity.Receipt) bool {
		return receipt.SellerID == sellerID
	}, limit, offset)
}

func (r *memoryReceiptRepository) list(match func(*entity.Receipt) bool, limit, offset int) ([]entity.Receipt, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var receipts []entity.Receipt
	for _, receipt := range r.store.receipts {
		if match(receipt) {
			receipts = append(receipts, *cloneReceipt(receipt))
		}
	}

	sort.Slice(receipts, func(i, j int) bool {
		return receipts[i].CreatedAt.After(receipts[j].CreatedAt)
	})
	total := int64(len(receipts))

	if offset >= len(receipts) {
		return []entity.Receipt{}, total, nil
	}
	end := len(receipts)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return receipts[offset:end], total, nil
}
