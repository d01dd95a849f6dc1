package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
	"github.com/fexraizen/lister-sub001/internal/domain/repository"
	"github.com/fexraizen/lister-sub001/pkg/errors"
)

type firestoreReceiptRepository struct {
	client *firestore.Client
}

func NewFirestoreReceiptRepository(client *firestore.Client) repository.ReceiptRepository {
	return &firestoreReceiptRepository{
		client: client,
	}
}

func (r *firestoreReceiptRepository) GetByID(ctx context.Context, id string) (*entity.Receipt, error) {
	doc, err := r.client.Collection("receipts").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Receipt not found", err)
		}
		return nil, errors.Internal("Failed to get receipt", err)
	}

	var receipt entity.Receipt
	if err := doc.DataTo(&receipt); err != nil {
		return nil, errors.Internal("Failed to parse receipt data", err)
	}
	receipt.ID = doc.Ref.ID

	return &receipt, nil
}

func (r *firestoreReceiptRepository) ListByBuyerID(ctx context.Context, buyerID string, limit, offset int) ([]entity.Receipt, int64, error) {
	return r.list(ctx, "buyerId", buyerID, limit, offset)
}

func (r *firestoreReceiptRepository) ListBySellerID(ctx context.Context, sellerID string, limit, offset int) ([]entity.Receipt, int64, error) {
	return r.list(ctx, "sellerId", sellerID, limit, offset)
}

func (r *firestoreReceiptRepository) list(ctx context.Context, field, value string, limit, offset int) ([]entity.Receipt, int64, error) {
	base := r.client.Collection("receipts").Where(field, "==", value)

	countDocs, err := base.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count receipts", err)
	}
	total := int64(len(countDocs))

	query := base.OrderBy("createdAt", firestore.Desc)
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var receipts []entity.Receipt
	iter := query.Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate receipts", err)
		}

		var receipt entity.Receipt
		if err := doc.DataTo(&receipt); err != nil {
			return nil, 0, errors.Internal("Failed to parse receipt data", err)
		}
		receipt.ID = doc.Ref.ID
		receipts = append(receipts, receipt)
	}

	return receipts, total, nil
}
