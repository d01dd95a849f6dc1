package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
	"github.com/fexraizen/lister-sub001/internal/domain/repository"
	"github.com/fexraizen/lister-sub001/pkg/errors"
)

type firestoreShopRepository struct {
	client *firestore.Client
}

func NewFirestoreShopRepository(client *firestore.Client) repository.ShopRepository {
	return &firestoreShopRepository{
		client: client,
	}
}

func membershipDocID(shopID, userID string) string {
	return shopID + "_" + userID
}

// Create writes the shop and its owner membership in one transaction.
func (r *firestoreShopRepository) Create(ctx context.Context, shop *entity.Shop, owner *entity.ShopMembership) error {
	if shop.ID == "" {
		doc := r.client.Collection("shops").NewDoc()
		shop.ID = doc.ID
		owner.ShopID = shop.ID
	}

	now := time.Now()
	if shop.CreatedAt.IsZero() {
		shop.CreatedAt = now
	}
	shop.UpdatedAt = now

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		shopRef := r.client.Collection("shops").Doc(shop.ID)
		memberRef := r.client.Collection("memberships").Doc(membershipDocID(owner.ShopID, owner.UserID))

		if err := tx.Create(shopRef, shop); err != nil {
			return err
		}
		return tx.Create(memberRef, owner)
	})
	if err != nil {
		return errors.Internal("Failed to create shop", err)
	}

	return nil
}

func (r *firestoreShopRepository) GetByID(ctx context.Context, id string) (*entity.Shop, error) {
	doc, err := r.client.Collection("shops").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Shop", err)
		}
		return nil, errors.Internal("Failed to get shop", err)
	}

	var shop entity.Shop
	if err := doc.DataTo(&shop); err != nil {
		return nil, errors.Internal("Failed to parse shop data", err)
	}

	return &shop, nil
}

func (r *firestoreShopRepository) Update(ctx context.Context, shop *entity.Shop) error {
	shop.UpdatedAt = time.Now()
	_, err := r.client.Collection("shops").Doc(shop.ID).Set(ctx, shop)
	if err != nil {
		return errors.Internal("Failed to update shop", err)
	}
	return nil
}

// Delete removes the shop document and every membership under it.
func (r *firestoreShopRepository) Delete(ctx context.Context, id string) error {
	iter := r.client.Collection("memberships").Where("shopId", "==", id).Documents(ctx)
	defer iter.Stop()

	batch := r.client.Batch()
	batch.Delete(r.client.Collection("shops").Doc(id))

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Internal("Failed to list shop memberships", err)
		}
		batch.Delete(doc.Ref)
	}

	if _, err := batch.Commit(ctx); err != nil {
		return errors.Internal("Failed to delete shop", err)
	}
	return nil
}

type firestoreMembershipRepository struct {
	client *firestore.Client
}

func NewFirestoreMembershipRepository(client *firestore.Client) repository.MembershipRepository {
	return &firestoreMembershipRepository{
		client: client,
	}
}

func (r *firestoreMembershipRepository) Get(ctx context.Context, shopID, userID string) (*entity.ShopMembership, error) {
	doc, err := r.client.Collection("memberships").Doc(membershipDocID(shopID, userID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Membership", err)
		}
		return nil, errors.Internal("Failed to get membership", err)
	}

	var membership entity.ShopMembership
	if err := doc.DataTo(&membership); err != nil {
		return nil, errors.Internal("Failed to parse membership data", err)
	}

	return &membership, nil
}

func (r *firestoreMembershipRepository) ListByShopID(ctx context.Context, shopID string) ([]entity.ShopMembership, error) {
	return r.list(ctx, "shopId", shopID)
}

func (r *firestoreMembershipRepository) ListByUserID(ctx context.Context, userID string) ([]entity.ShopMembership, error) {
	return r.list(ctx, "userId", userID)
}

func (r *firestoreMembershipRepository) list(ctx context.Context, field, value string) ([]entity.ShopMembership, error) {
	iter := r.client.Collection("memberships").Where(field, "==", value).Documents(ctx)
	defer iter.Stop()

	memberships := []entity.ShopMembership{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to list memberships", err)
		}

		var membership entity.ShopMembership
		if err := doc.DataTo(&membership); err != nil {
			return nil, errors.Internal("Failed to parse membership data", err)
		}
		memberships = append(memberships, membership)
	}

	return memberships, nil
}

// Add creates the membership inside a transaction keyed on the pair
// document, serializing concurrent invitations for the same shop member.
func (r *firestoreMembershipRepository) Add(ctx context.Context, membership *entity.ShopMembership) error {
	docRef := r.client.Collection("memberships").Doc(membershipDocID(membership.ShopID, membership.UserID))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		return tx.Create(docRef, membership)
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return errors.Conflict("User is already a member of this shop")
		}
		return errors.Internal("Failed to add membership", err)
	}

	return nil
}

func (r *firestoreMembershipRepository) Remove(ctx context.Context, shopID, userID string) error {
	docRef := r.client.Collection("memberships").Doc(membershipDocID(shopID, userID))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(docRef); err != nil {
			if status.Code(err) == codes.NotFound {
				return errors.NotFound("Membership", err)
			}
			return err
		}
		return tx.Delete(docRef)
	})
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return err
		}
		return errors.Internal("Failed to remove membership", err)
	}

	return nil
}
