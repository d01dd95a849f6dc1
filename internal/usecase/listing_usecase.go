package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
	"github.com/fexraizen/lister-sub001/internal/domain/repository"
	"github.com/fexraizen/lister-sub001/internal/domain/service"
	"github.com/fexraizen/lister-sub001/pkg/errors"
	"github.com/fexraizen/lister-sub001/pkg/logger"
)

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	shopRepo    repository.ShopRepository
	userRepo    repository.UserRepository
	resolver    *service.Resolver
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	shopRepo repository.ShopRepository,
	userRepo repository.UserRepository,
	resolver *service.Resolver,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		shopRepo:    shopRepo,
		userRepo:    userRepo,
		resolver:    resolver,
	}
}

type VehicleSpecsInput struct {
	Mileage  int `json:"mileage"`
	TopSpeed int `json:"top_speed"`
}

type CreateListingInput struct {
	ShopID      string             `json:"shop_id"`
	Category    string             `json:"category"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Price       float64            `json:"price"`
	Status      string             `json:"status"`
	Vehicle     *VehicleSpecsInput `json:"vehicle,omitempty"`
}

type UpdateListingInput struct {
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Price       float64            `json:"price"`
	Vehicle     *VehicleSpecsInput `json:"vehicle,omitempty"`
}

// validateCategoryFields enforces the vehicle variant: mileage and top speed
// present and non-negative iff category = vehicle.
func validateCategoryFields(category string, vehicle *VehicleSpecsInput) error {
	if !entity.ValidCategory(category) {
		return errors.Validation("Invalid listing category", nil)
	}
	if category == entity.CategoryVehicle {
		if vehicle == nil {
			return errors.Validation("Vehicle listings require mileage and top speed", nil)
		}
		if vehicle.Mileage < 0 || vehicle.TopSpeed < 0 {
			return errors.Validation("Vehicle mileage and top speed must be non-negative", nil)
		}
		return nil
	}
	if vehicle != nil {
		return errors.Validation("Only vehicle listings carry vehicle attributes", nil)
	}
	return nil
}

func (uc *ListingUseCase) CreateListing(ctx context.Context, actorID string, input CreateListingInput) (*entity.Listing, error) {
	actor, err := uc.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if input.Price < 0 {
		return nil, errors.Validation("Price must be non-negative", nil)
	}
	if err := validateCategoryFields(input.Category, input.Vehicle); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = entity.StatusActive
	}
	if status != entity.StatusActive && status != entity.StatusPassive {
		return nil, errors.Validation("New listings start as active or passive", nil)
	}

	// A listing created under a shop requires manage rights there.
	if input.ShopID != "" {
		if _, err := uc.shopRepo.GetByID(ctx, input.ShopID); err != nil {
			return nil, err
		}
		probe := &entity.Listing{OwnerID: actor.ID, ShopID: input.ShopID}
		canEdit, err := uc.resolver.CanEdit(ctx, actor, probe)
		if err != nil {
			return nil, err
		}
		if !canEdit {
			return nil, errors.Forbidden("You don't have permission to list under this shop", nil)
		}
	}

	listing := &entity.Listing{
		ID:          uuid.New().String(),
		OwnerID:     actor.ID,
		ShopID:      input.ShopID,
		Category:    input.Category,
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Status:      status,
		Views:       0,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if input.Vehicle != nil {
		listing.Vehicle = &entity.VehicleSpecs{
			Mileage:  input.Vehicle.Mileage,
			TopSpeed: input.Vehicle.TopSpeed,
		}
	}

	if err := uc.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) UpdateListing(ctx context.Context, actorID, listingID string, input UpdateListingInput) (*entity.Listing, error) {
	actor, err := uc.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	canEdit, err := uc.resolver.CanEdit(ctx, actor, listing)
	if err != nil {
		return nil, err
	}
	if !canEdit {
		return nil, errors.Forbidden("You don't have permission to update this listing", nil)
	}

	if listing.Status == entity.StatusSold {
		return nil, errors.InvalidTransition("Sold listings cannot be edited")
	}
	if input.Price < 0 {
		return nil, errors.Validation("Price must be non-negative", nil)
	}
	if listing.Category == entity.CategoryVehicle {
		if input.Vehicle == nil {
			return nil, errors.Validation("Vehicle listings require mileage and top speed", nil)
		}
		if input.Vehicle.Mileage < 0 || input.Vehicle.TopSpeed < 0 {
			return nil, errors.Validation("Vehicle mileage and top speed must be non-negative", nil)
		}
	} else if input.Vehicle != nil {
		return nil, errors.Validation("Only vehicle listings carry vehicle attributes", nil)
	}

	listing.Title = input.Title
	listing.Description = input.Description
	listing.Price = input.Price
	if listing.Category == entity.CategoryVehicle && input.Vehicle != nil {
		listing.Vehicle = &entity.VehicleSpecs{
			Mileage:  input.Vehicle.Mileage,
			TopSpeed: input.Vehicle.TopSpeed,
		}
	}
	listing.UpdatedAt = time.Now()

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) DeleteListing(ctx context.Context, actorID, listingID string) error {
	actor, err := uc.loadActor(ctx, actorID)
	if err != nil {
		return err
	}

	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return err
	}

	canEdit, err := uc.resolver.CanEdit(ctx, actor, listing)
	if err != nil {
		return err
	}
	if !canEdit {
		return errors.Forbidden("You don't have permission to delete this listing", nil)
	}

	return uc.listingRepo.Delete(ctx, listingID)
}

// GetListing enforces can_view and counts a view on active listings. The
// view increment runs asynchronously so a slow write never delays the read.
func (uc *ListingUseCase) GetListing(ctx context.Context, actorID, listingID string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	actor := entity.Actor{}
	if actorID != "" {
		actor, err = uc.loadActor(ctx, actorID)
		if err != nil {
			return nil, err
		}
	}

	perms, err := uc.resolver.Resolve(ctx, actor, listing)
	if err != nil {
		return nil, err
	}
	if !perms.CanView {
		return nil, errors.NotFound("Listing", nil)
	}

	if listing.Status == entity.StatusActive {
		go func() {
			viewCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := uc.listingRepo.IncrementViews(viewCtx, listingID); err != nil {
				logger.Warn("Failed to count view for listing %s: %v", listingID, err)
			}
		}()
	}

	return listing, nil
}

// BrowseListings returns active listings in ranked order: boosted first,
// then by views, ties in stored order. Ranking happens over the full
// matching snapshot so page boundaries cannot split a tier incorrectly.
func (uc *ListingUseCase) BrowseListings(ctx context.Context, category, shopID string, limit, offset int) ([]*entity.Listing, int64, error) {
	filter := map[string]interface{}{
		"status": entity.StatusActive,
	}
	if category != "" {
		filter["category"] = category
	}
	if shopID != "" {
		filter["shopId"] = shopID
	}

	listings, total, err := uc.listingRepo.List(ctx, filter, "", 0, 0)
	if err != nil {
		return nil, 0, err
	}

	ranked := service.Rank(listings, time.Now())

	if offset >= len(ranked) {
		return []*entity.Listing{}, total, nil
	}
	end := len(ranked)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return ranked[offset:end], total, nil
}

// ChangeStatus drives the explicit state machine; the repository CAS keeps
// a concurrent purchase from resurrecting a sold listing.
func (uc *ListingUseCase) ChangeStatus(ctx context.Context, actorID, listingID, newStatus string) (*entity.Listing, error) {
	actor, err := uc.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	canEdit, err := uc.resolver.CanEdit(ctx, actor, listing)
	if err != nil {
		return nil, err
	}
	if !canEdit {
		return nil, errors.Forbidden("You don't have permission to change this listing's status", nil)
	}

	if !entity.CanTransition(listing.Status, newStatus) {
		return nil, errors.InvalidTransition("Cannot change status from " + listing.Status + " to " + newStatus)
	}

	if err := uc.listingRepo.UpdateStatus(ctx, listingID, listing.Status, newStatus); err != nil {
		return nil, err
	}

	listing.Status = newStatus
	listing.UpdatedAt = time.Now()
	return listing, nil
}

// BoostListing opens a promotion window; a boosted listing ranks ahead of
// all unboosted ones until the window closes.
func (uc *ListingUseCase) BoostListing(ctx context.Context, actorID, listingID string, duration time.Duration) (*entity.Listing, error) {
	actor, err := uc.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	if duration <= 0 {
		return nil, errors.Validation("Boost duration must be positive", nil)
	}

	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	canEdit, err := uc.resolver.CanEdit(ctx, actor, listing)
	if err != nil {
		return nil, err
	}
	if !canEdit {
		return nil, errors.Forbidden("You don't have permission to boost this listing", nil)
	}

	if listing.Status != entity.StatusActive {
		return nil, errors.BadRequest("Only active listings can be boosted", nil)
	}

	until := time.Now().Add(duration)
	listing.BoostedUntil = &until
	listing.UpdatedAt = time.Now()

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

// TransferToShop moves a listing under a shop the actor can manage. The
// owner of record never changes.
func (uc *ListingUseCase) TransferToShop(ctx context.Context, actorID, listingID, destShopID string) (*entity.Listing, error) {
	actor, err := uc.loadActor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if listing.Status == entity.StatusSold {
		return nil, errors.InvalidTransition("Sold listings cannot be transferred")
	}

	if err := uc.resolver.AuthorizeTransfer(ctx, actor, listing, destShopID); err != nil {
		return nil, err
	}

	listing.ShopID = destShopID
	listing.UpdatedAt = time.Now()

	if err := uc.listingRepo.Update(ctx, listing); err != nil {
		return nil, err
	}

	return listing, nil
}

func (uc *ListingUseCase) ListMine(ctx context.Context, actorID, status string, limit, offset int) ([]*entity.Listing, int64, error) {
	return uc.listingRepo.ListByOwnerID(ctx, actorID, status, limit, offset)
}

func (uc *ListingUseCase) ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*entity.Listing, int64, error) {
	if _, err := uc.shopRepo.GetByID(ctx, shopID); err != nil {
		return nil, 0, err
	}
	return uc.listingRepo.ListByShopID(ctx, shopID, entity.StatusActive, limit, offset)
}

// Permissions exposes the resolver's answer for UI rendering. The result is
// advisory only; mutations re-check at execution time.
func (uc *ListingUseCase) Permissions(ctx context.Context, actorID, listingID string) (service.Permissions, error) {
	listing, err := uc.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return service.Permissions{}, err
	}

	actor := entity.Actor{}
	if actorID != "" {
		actor, err = uc.loadActor(ctx, actorID)
		if err != nil {
			return service.Permissions{}, err
		}
	}

	return uc.resolver.Resolve(ctx, actor, listing)
}

func (uc *ListingUseCase) loadActor(ctx context.Context, actorID string) (entity.Actor, error) {
	return loadActor(ctx, uc.userRepo, actorID)
}
