package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterrepo "github.com/fexraizen/lister-sub001/internal/adapter/repository"
	"github.com/fexraizen/lister-sub001/internal/domain/entity"
	"github.com/fexraizen/lister-sub001/pkg/errors"
)

type shopFixture struct {
	store *adapterrepo.MemoryStore
	uc    *ShopUseCase
}

func newShopFixture(t *testing.T) *shopFixture {
	t.Helper()

	store := adapterrepo.NewMemoryStore()
	uc := NewShopUseCase(store.Shops(), store.Memberships(), store.Listings(), store.Users())
	return &shopFixture{store: store, uc: uc}
}

func (f *shopFixture) seedUser(t *testing.T, id, role string) {
	t.Helper()
	require.NoError(t, f.store.Users().Create(context.Background(), &entity.User{
		ID:       id,
		Email:    id + "@example.com",
		Username: id,
		Role:     role,
	}))
}

func TestCreateShopWritesOwnerMembership(t *testing.T) {
	f := newShopFixture(t)
	f.seedUser(t, "founder", entity.RoleUser)
	ctx := context.Background()

	shop, err := f.uc.CreateShop(ctx, "founder", CreateShopInput{Name: "Spare Parts"})
	require.NoError(t, err)

	membership, err := f.store.Memberships().Get(ctx, shop.ID, "founder")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleShopOwner, membership.Role)
}

func TestCreateShopNameTooShort(t *testing.T) {
	f := newShopFixture(t)

	_, err := f.uc.CreateShop(context.Background(), "founder", CreateShopInput{Name: "  ab "})
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
}

func TestAddMember(t *testing.T) {
	f := newShopFixture(t)
	f.seedUser(t, "founder", entity.RoleUser)
	f.seedUser(t, "helper", entity.RoleUser)
	f.seedUser(t, "outsider", entity.RoleUser)
	ctx := context.Background()

	shop, err := f.uc.CreateShop(ctx, "founder", CreateShopInput{Name: "Spare Parts"})
	require.NoError(t, err)

	t.Run("outsider cannot invite", func(t *testing.T) {
		_, err := f.uc.AddMember(ctx, "outsider", shop.ID, AddMemberInput{UserID: "helper"})
		assert.True(t, errors.Is(err, "FORBIDDEN"))
	})

	t.Run("owner invites editor", func(t *testing.T) {
		membership, err := f.uc.AddMember(ctx, "founder", shop.ID, AddMemberInput{UserID: "helper"})
		require.NoError(t, err)
		assert.Equal(t, entity.RoleShopEditor, membership.Role, "invites only ever grant editor")
	})

	t.Run("duplicate membership conflicts", func(t *testing.T) {
		_, err := f.uc.AddMember(ctx, "founder", shop.ID, AddMemberInput{UserID: "helper"})
		assert.True(t, errors.Is(err, "CONFLICT"))
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.uc.AddMember(ctx, "founder", shop.ID, AddMemberInput{UserID: "ghost"})
		assert.True(t, errors.Is(err, "NOT_FOUND"))
	})
}

func TestRemoveMember(t *testing.T) {
	f := newShopFixture(t)
	f.seedUser(t, "founder", entity.RoleUser)
	f.seedUser(t, "helper", entity.RoleUser)
	f.seedUser(t, "second", entity.RoleUser)
	ctx := context.Background()

	shop, err := f.uc.CreateShop(ctx, "founder", CreateShopInput{Name: "Spare Parts"})
	require.NoError(t, err)
	_, err = f.uc.AddMember(ctx, "founder", shop.ID, AddMemberInput{UserID: "helper"})
	require.NoError(t, err)
	_, err = f.uc.AddMember(ctx, "founder", shop.ID, AddMemberInput{UserID: "second"})
	require.NoError(t, err)

	t.Run("owner membership is permanent", func(t *testing.T) {
		err := f.uc.RemoveMember(ctx, "founder", shop.ID, "founder")
		assert.True(t, errors.Is(err, "FORBIDDEN"))
	})

	t.Run("editor cannot remove another editor", func(t *testing.T) {
		err := f.uc.RemoveMember(ctx, "helper", shop.ID, "second")
		assert.True(t, errors.Is(err, "FORBIDDEN"))
	})

	t.Run("editor may leave", func(t *testing.T) {
		require.NoError(t, f.uc.RemoveMember(ctx, "helper", shop.ID, "helper"))
		_, err := f.store.Memberships().Get(ctx, shop.ID, "helper")
		assert.True(t, errors.Is(err, "NOT_FOUND"))
	})

	t.Run("owner removes an editor", func(t *testing.T) {
		require.NoError(t, f.uc.RemoveMember(ctx, "founder", shop.ID, "second"))
	})
}

func TestUpdateShopRequiresOwner(t *testing.T) {
	f := newShopFixture(t)
	f.seedUser(t, "founder", entity.RoleUser)
	f.seedUser(t, "helper", entity.RoleUser)
	f.seedUser(t, "admin", entity.RoleAdmin)
	ctx := context.Background()

	shop, err := f.uc.CreateShop(ctx, "founder", CreateShopInput{Name: "Spare Parts"})
	require.NoError(t, err)
	_, err = f.uc.AddMember(ctx, "founder", shop.ID, AddMemberInput{UserID: "helper"})
	require.NoError(t, err)

	_, err = f.uc.UpdateShop(ctx, "helper", shop.ID, UpdateShopInput{Name: "New Name"})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	updated, err := f.uc.UpdateShop(ctx, "founder", shop.ID, UpdateShopInput{Name: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)

	// Elevated platform roles bypass ownership.
	updated, err = f.uc.UpdateShop(ctx, "admin", shop.ID, UpdateShopInput{Description: "Moderated"})
	require.NoError(t, err)
	assert.Equal(t, "Moderated", updated.Description)
}

func TestDeleteShopDetachesListings(t *testing.T) {
	f := newShopFixture(t)
	f.seedUser(t, "founder", entity.RoleUser)
	ctx := context.Background()

	shop, err := f.uc.CreateShop(ctx, "founder", CreateShopInput{Name: "Spare Parts"})
	require.NoError(t, err)

	listing := &entity.Listing{
		ID:       "listing-1",
		OwnerID:  "founder",
		ShopID:   shop.ID,
		Category: entity.CategoryItem,
		Title:    "Gasket",
		Price:    5,
		Status:   entity.StatusActive,
	}
	require.NoError(t, f.store.Listings().Create(ctx, listing))

	require.NoError(t, f.uc.DeleteShop(ctx, "founder", shop.ID))

	_, err = f.uc.GetShop(ctx, shop.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	survived, err := f.store.Listings().GetByID(ctx, "listing-1")
	require.NoError(t, err)
	assert.Empty(t, survived.ShopID)
	assert.Equal(t, "founder", survived.OwnerID)
}

func TestListMyShops(t *testing.T) {
	f := newShopFixture(t)
	f.seedUser(t, "founder", entity.RoleUser)
	f.seedUser(t, "helper", entity.RoleUser)
	ctx := context.Background()

	first, err := f.uc.CreateShop(ctx, "founder", CreateShopInput{Name: "First Shop"})
	require.NoError(t, err)
	_, err = f.uc.CreateShop(ctx, "founder", CreateShopInput{Name: "Second Shop"})
	require.NoError(t, err)
	_, err = f.uc.AddMember(ctx, "founder", first.ID, AddMemberInput{UserID: "helper"})
	require.NoError(t, err)

	founderShops, err := f.uc.ListMyShops(ctx, "founder")
	require.NoError(t, err)
	assert.Len(t, founderShops, 2)

	helperShops, err := f.uc.ListMyShops(ctx, "helper")
	require.NoError(t, err)
	require.Len(t, helperShops, 1)
	assert.Equal(t, first.ID, helperShops[0].ID)
}
