package repository

import (
	"context"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
)

type ShopRepository interface {
	// Create writes the shop and its owner membership as one unit; a shop
	// never exists without exactly one owner membership.
	Create(ctx context.Context, shop *entity.Shop, owner *entity.ShopMembership) error
	GetByID(ctx context.Context, id string) (*entity.Shop, error)
	Update(ctx context.Context, shop *entity.Shop) error
	Delete(ctx context.Context, id string) error
}

type MembershipRepository interface {
	Get(ctx context.Context, shopID, userID string) (*entity.ShopMembership, error)
	ListByShopID(ctx context.Context, shopID string) ([]entity.ShopMembership, error)
	ListByUserID(ctx context.Context, userID string) ([]entity.ShopMembership, error)
	// Add and Remove serialize per shop; Add fails with CONFLICT when the
	// pair already exists.
	Add(ctx context.Context, membership *entity.ShopMembership) error
	Remove(ctx context.Context, shopID, userID string) error
}
