package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
	"github.com/fexraizen/lister-sub001/pkg/errors"
)

type memoryShopRepository struct {
	store *MemoryStore
}

func (r *memoryShopRepository) Create(ctx context.Context, shop *entity.Shop, owner *entity.ShopMembership) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if shop.ID == "" {
		shop.ID = uuid.New().String()
	}
	now := time.Now()
	shop.CreatedAt = now
	shop.UpdatedAt = now

	owner.ShopID = shop.ID
	owner.Role = entity.RoleShopOwner
	owner.CreatedAt = now

	r.store.shops[shop.ID] = cloneShop(shop)
	r.store.memberships[membershipKey(shop.ID, owner.UserID)] = cloneMembership(owner)
	return nil
}

func (r *memoryShopRepository) GetByID(ctx context.Context, id string) (*entity.Shop, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	shop, ok := r.store.shops[id]
	if !ok {
		return nil, errors.NotFound("Shop not found", nil)
	}
	return cloneShop(shop), nil
}

func (r *memoryShopRepository) Update(ctx context.Context, shop *entity.Shop) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.shops[shop.ID]
	if !ok {
		return errors.NotFound("Shop not found", nil)
	}

	shop.CreatedAt = stored.CreatedAt
	shop.UpdatedAt = time.Now()
	r.store.shops[shop.ID] = cloneShop(shop)
	return nil
}

func (r *memoryShopRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.shops[id]; !ok {
		return errors.NotFound("Shop not found", nil)
	}
	delete(r.store.shops, id)

	for key := range r.store.memberships {
		if strings.HasPrefix(key, id+"_") {
			delete(r.store.memberships, key)
		}
	}
	return nil
}

type memoryMembershipRepository struct {
	store *MemoryStore
}

func (r *memoryMembershipRepository) Get(ctx context.Context, shopID, userID string) (*entity.ShopMembership, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	membership, ok := r.store.memberships[membershipKey(shopID, userID)]
	if !ok {
		return nil, errors.NotFound("Membership not found", nil)
	}
	return cloneMembership(membership), nil
}

func (r *memoryMembershipRepository) ListByShopID(ctx context.Context, shopID string) ([]entity.ShopMembership, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var memberships []entity.ShopMembership
	for _, m := range r.store.memberships {
		if m.ShopID == shopID {
			memberships = append(memberships, *cloneMembership(m))
		}
	}
	return memberships, nil
}

func (r *memoryMembershipRepository) ListByUserID(ctx context.Context, userID string) ([]entity.ShopMembership, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var memberships []entity.ShopMembership
	for _, m := range r.store.memberships {
		if m.UserID == userID {
			memberships = append(memberships, *cloneMembership(m))
		}
	}
	return memberships, nil
}

func (r *memoryMembershipRepository) Add(ctx context.Context, membership *entity.ShopMembership) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := membershipKey(membership.ShopID, membership.UserID)
	if _, exists := r.store.memberships[key]; exists {
		return errors.Conflict("User is already a member of this shop")
	}

	membership.CreatedAt = time.Now()
	r.store.memberships[key] = cloneMembership(membership)
	return nil
}

func (r *memoryMembershipRepository) Remove(ctx context.Context, shopID, userID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := membershipKey(shopID, userID)
	if _, ok := r.store.memberships[key]; !ok {
		return errors.NotFound("Membership not found", nil)
	}
	delete(r.store.memberships, key)
	return nil
}
