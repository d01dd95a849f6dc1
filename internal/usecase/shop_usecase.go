package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
	"github.com/fexraizen/lister-sub001/internal/domain/repository"
	"github.com/fexraizen/lister-sub001/pkg/errors"
	"github.com/fexraizen/lister-sub001/pkg/logger"
)

type ShopUseCase struct {
	shopRepo       repository.ShopRepository
	membershipRepo repository.MembershipRepository
	listingRepo    repository.ListingRepository
	userRepo       repository.UserRepository
}

func NewShopUseCase(
	shopRepo repository.ShopRepository,
	membershipRepo repository.MembershipRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
) *ShopUseCase {
	return &ShopUseCase{
		shopRepo:       shopRepo,
		membershipRepo: membershipRepo,
		listingRepo:    listingRepo,
		userRepo:       userRepo,
	}
}

type CreateShopInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	Phone       string `json:"phone"`
}

type UpdateShopInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	Phone       string `json:"phone"`
}

// CreateShop writes the shop together with the creator's owner membership;
// the pair is one storage unit so a shop can never exist ownerless.
func (uc *ShopUseCase) CreateShop(ctx context.Context, actorID string, input CreateShopInput) (*entity.Shop, error) {
	if len(strings.TrimSpace(input.Name)) < 3 {
		return nil, errors.Validation("Shop name must be at least 3 characters", nil)
	}

	shop := &entity.Shop{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		LogoURL:     input.LogoURL,
		Phone:       input.Phone,
		Verified:    false,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	owner := &entity.ShopMembership{
		ShopID:    shop.ID,
		UserID:    actorID,
		Role:      entity.RoleShopOwner,
		CreatedAt: time.Now(),
	}

	if err := uc.shopRepo.Create(ctx, shop, owner); err != nil {
		return nil, err
	}

	return shop, nil
}

func (uc *ShopUseCase) GetShop(ctx context.Context, shopID string) (*entity.Shop, error) {
	return uc.shopRepo.GetByID(ctx, shopID)
}

func (uc *ShopUseCase) UpdateShop(ctx context.Context, actorID, shopID string, input UpdateShopInput) (*entity.Shop, error) {
	shop, err := uc.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	if err := uc.requireOwner(ctx, actorID, shopID); err != nil {
		return nil, err
	}

	if input.Name != "" {
		if len(strings.TrimSpace(input.Name)) < 3 {
			return nil, errors.Validation("Shop name must be at least 3 characters", nil)
		}
		shop.Name = strings.TrimSpace(input.Name)
	}
	if input.Description != "" {
		shop.Description = input.Description
	}
	if input.LogoURL != "" {
		shop.LogoURL = input.LogoURL
	}
	if input.Phone != "" {
		shop.Phone = input.Phone
	}
	shop.UpdatedAt = time.Now()

	if err := uc.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}

	return shop, nil
}

// DeleteShop removes the shop and all memberships. Listings survive under
// their original owners; their shop reference is cleared.
func (uc *ShopUseCase) DeleteShop(ctx context.Context, actorID, shopID string) error {
	if _, err := uc.shopRepo.GetByID(ctx, shopID); err != nil {
		return err
	}

	if err := uc.requireOwner(ctx, actorID, shopID); err != nil {
		return err
	}

	listings, _, err := uc.listingRepo.ListByShopID(ctx, shopID, "", 0, 0)
	if err != nil {
		return err
	}
	for _, listing := range listings {
		listing.ShopID = ""
		listing.UpdatedAt = time.Now()
		if err := uc.listingRepo.Update(ctx, listing); err != nil {
			logger.Warn("Failed to detach listing %s from deleted shop %s: %v", listing.ID, shopID, err)
		}
	}

	return uc.shopRepo.Delete(ctx, shopID)
}

type AddMemberInput struct {
	UserID string `json:"user_id"`
}

// AddMember invites a user as editor. Owners and editors may invite; the
// owner role is only ever created with the shop itself.
func (uc *ShopUseCase) AddMember(ctx context.Context, actorID, shopID string, input AddMemberInput) (*entity.ShopMembership, error) {
	if _, err := uc.shopRepo.GetByID(ctx, shopID); err != nil {
		return nil, err
	}

	if err := uc.requireManager(ctx, actorID, shopID); err != nil {
		return nil, err
	}

	if _, err := uc.userRepo.GetByID(ctx, input.UserID); err != nil {
		return nil, errors.NotFound("User", err)
	}

	membership := &entity.ShopMembership{
		ShopID:    shopID,
		UserID:    input.UserID,
		Role:      entity.RoleShopEditor,
		CreatedAt: time.Now(),
	}

	if err := uc.membershipRepo.Add(ctx, membership); err != nil {
		return nil, err
	}

	return membership, nil
}

// RemoveMember drops an editor membership. The owner membership is never
// removable through member management, so a shop cannot be orphaned.
func (uc *ShopUseCase) RemoveMember(ctx context.Context, actorID, shopID, userID string) error {
	membership, err := uc.membershipRepo.Get(ctx, shopID, userID)
	if err != nil {
		return err
	}

	if membership.Role == entity.RoleShopOwner {
		return errors.Forbidden("The shop owner membership cannot be removed", nil)
	}

	// Editors may leave on their own; removing someone else takes the
	// owner role or an elevated platform role.
	if actorID != userID {
		if err := uc.requireOwner(ctx, actorID, shopID); err != nil {
			return err
		}
	}

	return uc.membershipRepo.Remove(ctx, shopID, userID)
}

func (uc *ShopUseCase) ListMembers(ctx context.Context, actorID, shopID string) ([]entity.ShopMembership, error) {
	if _, err := uc.shopRepo.GetByID(ctx, shopID); err != nil {
		return nil, err
	}
	if err := uc.requireManager(ctx, actorID, shopID); err != nil {
		return nil, err
	}
	return uc.membershipRepo.ListByShopID(ctx, shopID)
}

// ListMyShops returns every shop the actor holds a membership in.
func (uc *ShopUseCase) ListMyShops(ctx context.Context, actorID string) ([]entity.Shop, error) {
	memberships, err := uc.membershipRepo.ListByUserID(ctx, actorID)
	if err != nil {
		return nil, err
	}

	shops := make([]entity.Shop, 0, len(memberships))
	for _, m := range memberships {
		shop, err := uc.shopRepo.GetByID(ctx, m.ShopID)
		if err != nil {
			logger.Warn("Membership references missing shop %s: %v", m.ShopID, err)
			continue
		}
		shops = append(shops, *shop)
	}
	return shops, nil
}

func (uc *ShopUseCase) requireOwner(ctx context.Context, actorID, shopID string) error {
	actor, err := loadActor(ctx, uc.userRepo, actorID)
	if err != nil {
		return err
	}
	if actor.Elevated() {
		return nil
	}

	membership, err := uc.membershipRepo.Get(ctx, shopID, actorID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return errors.Forbidden("Shop owner role required", nil)
		}
		return err
	}
	if membership.Role != entity.RoleShopOwner {
		return errors.Forbidden("Shop owner role required", nil)
	}
	return nil
}

func (uc *ShopUseCase) requireManager(ctx context.Context, actorID, shopID string) error {
	actor, err := loadActor(ctx, uc.userRepo, actorID)
	if err != nil {
		return err
	}
	if actor.Elevated() {
		return nil
	}

	membership, err := uc.membershipRepo.Get(ctx, shopID, actorID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return errors.Forbidden("Shop membership required", nil)
		}
		return err
	}
	if !membership.CanManage() {
		return errors.Forbidden("Shop membership required", nil)
	}
	return nil
}
