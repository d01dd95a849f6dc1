package service

import (
	"context"
	"strings"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
	"github.com/fexraizen/lister-sub001/internal/domain/repository"
	"github.com/fexraizen/lister-sub001/pkg/errors"
)

// Permissions is the resolved capability set of an actor over one listing.
// CanTransfer covers eligibility to initiate a transfer; the destination
// shop is checked separately by AuthorizeTransfer.
type Permissions struct {
	CanView     bool `json:"can_view"`
	CanEdit     bool `json:"can_edit"`
	CanTransfer bool `json:"can_transfer"`
	CanPurchase bool `json:"can_purchase"`
}

// Resolver derives an actor's permitted operations on a listing from
// ownership, shop membership, platform role and balance. It is a pure query
// over current state: results are advisory and every mutating operation
// re-validates inside its own critical section.
type Resolver struct {
	membershipRepo repository.MembershipRepository
	shopRepo       repository.ShopRepository
	ledger         repository.Ledger
}

func NewResolver(
	membershipRepo repository.MembershipRepository,
	shopRepo repository.ShopRepository,
	ledger repository.Ledger,
) *Resolver {
	return &Resolver{
		membershipRepo: membershipRepo,
		shopRepo:       shopRepo,
		ledger:         ledger,
	}
}

func (r *Resolver) Resolve(ctx context.Context, actor entity.Actor, listing *entity.Listing) (Permissions, error) {
	canEdit, err := r.canEdit(ctx, actor, listing)
	if err != nil {
		return Permissions{}, err
	}

	canPurchase := false
	if reason, err := r.denyPurchase(ctx, actor, listing); err != nil {
		return Permissions{}, err
	} else if reason == "" {
		canPurchase = true
	}

	return Permissions{
		CanView:     listing.Status == entity.StatusActive || canEdit || actor.Elevated(),
		CanEdit:     canEdit,
		CanTransfer: canEdit,
		CanPurchase: canPurchase,
	}, nil
}

// CanEdit is the single edit gate: ownership, manage-capable membership in
// the listing's shop, or an elevated platform role.
func (r *Resolver) CanEdit(ctx context.Context, actor entity.Actor, listing *entity.Listing) (bool, error) {
	return r.canEdit(ctx, actor, listing)
}

func (r *Resolver) canEdit(ctx context.Context, actor entity.Actor, listing *entity.Listing) (bool, error) {
	if actor.Anonymous() {
		return false, nil
	}
	if actor.ID == listing.OwnerID || actor.Elevated() {
		return true, nil
	}
	if listing.ShopID == "" {
		return false, nil
	}

	membership, err := r.membershipRepo.Get(ctx, listing.ShopID, actor.ID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return false, nil
		}
		return false, err
	}
	return membership.CanManage(), nil
}

// AuthorizeTransfer decides whether the actor may move the listing into the
// destination shop: edit rights on the listing plus owner/editor membership
// in an existing destination shop. A missing destination is a distinct
// failure from a malformed identifier.
func (r *Resolver) AuthorizeTransfer(ctx context.Context, actor entity.Actor, listing *entity.Listing, destShopID string) error {
	if strings.TrimSpace(destShopID) == "" {
		return errors.Validation("Destination shop id is required", nil)
	}

	canEdit, err := r.canEdit(ctx, actor, listing)
	if err != nil {
		return err
	}
	if !canEdit {
		return errors.Forbidden("You don't have permission to transfer this listing", nil)
	}

	if _, err := r.shopRepo.GetByID(ctx, destShopID); err != nil {
		return err
	}

	if actor.Elevated() {
		return nil
	}

	membership, err := r.membershipRepo.Get(ctx, destShopID, actor.ID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return errors.Forbidden("You are not a member of the destination shop", nil)
		}
		return err
	}
	if !membership.CanManage() {
		return errors.Forbidden("You are not a member of the destination shop", nil)
	}
	return nil
}

// DenyPurchase returns nil when the actor may purchase the listing, and a
// FORBIDDEN error carrying the first failing sub-reason otherwise.
func (r *Resolver) DenyPurchase(ctx context.Context, actor entity.Actor, listing *entity.Listing) error {
	reason, err := r.denyPurchase(ctx, actor, listing)
	if err != nil {
		return err
	}
	switch reason {
	case "":
		return nil
	case reasonAnonymous:
		return errors.Unauthorized("Authentication required to purchase", nil)
	case errors.ReasonSelfPurchase:
		return errors.ForbiddenReason(reason, "You cannot purchase your own listing")
	case errors.ReasonNotActive:
		return errors.ForbiddenReason(reason, "Listing is not available for purchase")
	case errors.ReasonNotPurchasable:
		return errors.ForbiddenReason(reason, "Service listings are contact-negotiated, not purchasable")
	case errors.ReasonInsufficientBalance:
		return errors.ForbiddenReason(reason, "Balance does not cover the listing price")
	}
	return errors.Forbidden("Purchase not permitted", nil)
}

const reasonAnonymous = "ANONYMOUS"

func (r *Resolver) denyPurchase(ctx context.Context, actor entity.Actor, listing *entity.Listing) (string, error) {
	if actor.Anonymous() {
		return reasonAnonymous, nil
	}
	if actor.ID == listing.OwnerID {
		return errors.ReasonSelfPurchase, nil
	}
	if listing.ShopID != "" {
		membership, err := r.membershipRepo.Get(ctx, listing.ShopID, actor.ID)
		if err != nil && !errors.Is(err, "NOT_FOUND") {
			return "", err
		}
		if err == nil && membership != nil {
			return errors.ReasonSelfPurchase, nil
		}
	}
	if listing.Status != entity.StatusActive {
		return errors.ReasonNotActive, nil
	}
	if listing.Category == entity.CategoryService {
		return errors.ReasonNotPurchasable, nil
	}

	balance, err := r.ledger.BalanceOf(ctx, actor.ID)
	if err != nil {
		return "", err
	}
	if balance < listing.Price {
		return errors.ReasonInsufficientBalance, nil
	}
	return "", nil
}
