package repository

import (
	"context"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	List(ctx context.Context, filter map[string]interface{}, sort string, limit, offset int) ([]*entity.Listing, int64, error)
	Update(ctx context.Context, listing *entity.Listing) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	ListByOwnerID(ctx context.Context, ownerID string, status string, limit, offset int) ([]*entity.Listing, int64, error)
	ListByShopID(ctx context.Context, shopID string, status string, limit, offset int) ([]*entity.Listing, int64, error)
	// UpdateStatus is a compare-and-set: it writes the new status only when
	// the stored status still equals from, and fails with INVALID_TRANSITION
	// otherwise.
	UpdateStatus(ctx context.Context, id string, from, to string) error
}
