package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterrepo "github.com/fexraizen/lister-sub001/internal/adapter/repository"
	"github.com/fexraizen/lister-sub001/internal/domain/entity"
	"github.com/fexraizen/lister-sub001/internal/domain/service"
	"github.com/fexraizen/lister-sub001/pkg/errors"
)

type listingFixture struct {
	store *adapterrepo.MemoryStore
	uc    *ListingUseCase
}

func newListingFixture(t *testing.T) *listingFixture {
	t.Helper()

	store := adapterrepo.NewMemoryStore()
	resolver := service.NewResolver(store.Memberships(), store.Shops(), store.Wallets())
	uc := NewListingUseCase(store.Listings(), store.Shops(), store.Users(), resolver)
	return &listingFixture{store: store, uc: uc}
}

func (f *listingFixture) seedUser(t *testing.T, id, role string) {
	t.Helper()
	require.NoError(t, f.store.Users().Create(context.Background(), &entity.User{
		ID:       id,
		Email:    id + "@example.com",
		Username: id,
		Role:     role,
	}))
}

func TestCreateListingDefaultsToActive(t *testing.T) {
	f := newListingFixture(t)
	f.seedUser(t, "owner", entity.RoleUser)

	listing, err := f.uc.CreateListing(context.Background(), "owner", CreateListingInput{
		Category: entity.CategoryItem,
		Title:    "Bookshelf",
		Price:    30,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusActive, listing.Status)
	assert.Equal(t, "owner", listing.OwnerID)
	assert.Zero(t, listing.Views)
}

func TestCreateListingVehicleVariant(t *testing.T) {
	f := newListingFixture(t)
	f.seedUser(t, "owner", entity.RoleUser)
	ctx := context.Background()

	t.Run("vehicle requires specs", func(t *testing.T) {
		_, err := f.uc.CreateListing(ctx, "owner", CreateListingInput{
			Category: entity.CategoryVehicle,
			Title:    "Hatchback",
			Price:    5000,
		})
		assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	})

	t.Run("non-vehicle rejects specs", func(t *testing.T) {
		_, err := f.uc.CreateListing(ctx, "owner", CreateListingInput{
			Category: entity.CategoryItem,
			Title:    "Toy car",
			Price:    10,
			Vehicle:  &VehicleSpecsInput{Mileage: 1, TopSpeed: 2},
		})
		assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	})

	t.Run("vehicle with specs succeeds", func(t *testing.T) {
		listing, err := f.uc.CreateListing(ctx, "owner", CreateListingInput{
			Category: entity.CategoryVehicle,
			Title:    "Hatchback",
			Price:    5000,
			Vehicle:  &VehicleSpecsInput{Mileage: 42000, TopSpeed: 180},
		})
		require.NoError(t, err)
		require.NotNil(t, listing.Vehicle)
		assert.Equal(t, 42000, listing.Vehicle.Mileage)
	})

	t.Run("negative specs rejected", func(t *testing.T) {
		_, err := f.uc.CreateListing(ctx, "owner", CreateListingInput{
			Category: entity.CategoryVehicle,
			Title:    "Hatchback",
			Price:    5000,
			Vehicle:  &VehicleSpecsInput{Mileage: -1, TopSpeed: 180},
		})
		assert.True(t, errors.Is(err, "VALIDATION_ERROR"))
	})
}

func TestCreateListingUnderShopRequiresManageRights(t *testing.T) {
	f := newListingFixture(t)
	f.seedUser(t, "owner", entity.RoleUser)
	f.seedUser(t, "outsider", entity.RoleUser)
	ctx := context.Background()

	require.NoError(t, f.store.Shops().Create(ctx,
		&entity.Shop{ID: "shop-1", Name: "Bike Shed"},
		&entity.ShopMembership{ShopID: "shop-1", UserID: "owner", Role: entity.RoleShopOwner},
	))

	_, err := f.uc.CreateListing(ctx, "outsider", CreateListingInput{
		ShopID:   "shop-1",
		Category: entity.CategoryItem,
		Title:    "Saddle",
		Price:    25,
	})
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	listing, err := f.uc.CreateListing(ctx, "owner", CreateListingInput{
		ShopID:   "shop-1",
		Category: entity.CategoryItem,
		Title:    "Saddle",
		Price:    25,
	})
	require.NoError(t, err)
	assert.Equal(t, "shop-1", listing.ShopID)
}

func TestChangeStatusStateMachine(t *testing.T) {
	f := newListingFixture(t)
	f.seedUser(t, "owner", entity.RoleUser)
	ctx := context.Background()

	listing, err := f.uc.CreateListing(ctx, "owner", CreateListingInput{
		Category: entity.CategoryItem,
		Title:    "Heater",
		Price:    80,
	})
	require.NoError(t, err)

	// active -> passive -> active -> out_of_stock -> active
	for _, to := range []string{entity.StatusPassive, entity.StatusActive, entity.StatusOutOfStock, entity.StatusActive} {
		listing, err = f.uc.ChangeStatus(ctx, "owner", listing.ID, to)
		require.NoError(t, err)
		assert.Equal(t, to, listing.Status)
	}

	// passive -> out_of_stock is not a legal edge.
	_, err = f.uc.ChangeStatus(ctx, "owner", listing.ID, entity.StatusPassive)
	require.NoError(t, err)
	_, err = f.uc.ChangeStatus(ctx, "owner", listing.ID, entity.StatusOutOfStock)
	assert.True(t, errors.Is(err, "INVALID_TRANSITION"))

	// sold is never an explicit target.
	_, err = f.uc.ChangeStatus(ctx, "owner", listing.ID, entity.StatusSold)
	assert.True(t, errors.Is(err, "INVALID_TRANSITION"))
}

func TestChangeStatusRequiresEditRights(t *testing.T) {
	f := newListingFixture(t)
	f.seedUser(t, "owner", entity.RoleUser)
	f.seedUser(t, "stranger", entity.RoleUser)
	ctx := context.Background()

	listing, err := f.uc.CreateListing(ctx, "owner", CreateListingInput{
		Category: entity.CategoryItem,
		Title:    "Grill",
		Price:    60,
	})
	require.NoError(t, err)

	_, err = f.uc.ChangeStatus(ctx, "stranger", listing.ID, entity.StatusPassive)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestUpdateSoldListingRejected(t *testing.T) {
	f := newListingFixture(t)
	f.seedUser(t, "owner", entity.RoleUser)
	ctx := context.Background()

	listing := &entity.Listing{
		ID:       "sold-1",
		OwnerID:  "owner",
		Category: entity.CategoryItem,
		Title:    "Tent",
		Price:    45,
		Status:   entity.StatusSold,
	}
	require.NoError(t, f.store.Listings().Create(ctx, listing))

	_, err := f.uc.UpdateListing(ctx, "owner", "sold-1", UpdateListingInput{
		Title: "Tent v2",
		Price: 50,
	})
	assert.True(t, errors.Is(err, "INVALID_TRANSITION"))
}

func TestBoostListing(t *testing.T) {
	f := newListingFixture(t)
	f.seedUser(t, "owner", entity.RoleUser)
	ctx := context.Background()

	listing, err := f.uc.CreateListing(ctx, "owner", CreateListingInput{
		Category: entity.CategoryItem,
		Title:    "Drill",
		Price:    70,
	})
	require.NoError(t, err)

	boosted, err := f.uc.BoostListing(ctx, "owner", listing.ID, 24*time.Hour)
	require.NoError(t, err)
	require.NotNil(t, boosted.BoostedUntil)
	assert.True(t, boosted.IsBoosted(time.Now()))

	// Non-active listings cannot be boosted.
	_, err = f.uc.ChangeStatus(ctx, "owner", listing.ID, entity.StatusPassive)
	require.NoError(t, err)
	_, err = f.uc.BoostListing(ctx, "owner", listing.ID, time.Hour)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestTransferToShop(t *testing.T) {
	f := newListingFixture(t)
	f.seedUser(t, "owner", entity.RoleUser)
	ctx := context.Background()

	require.NoError(t, f.store.Shops().Create(ctx,
		&entity.Shop{ID: "shop-1", Name: "Tool Crib"},
		&entity.ShopMembership{ShopID: "shop-1", UserID: "owner", Role: entity.RoleShopOwner},
	))

	listing, err := f.uc.CreateListing(ctx, "owner", CreateListingInput{
		Category: entity.CategoryItem,
		Title:    "Clamp set",
		Price:    20,
	})
	require.NoError(t, err)

	transferred, err := f.uc.TransferToShop(ctx, "owner", listing.ID, "shop-1")
	require.NoError(t, err)
	assert.Equal(t, "shop-1", transferred.ShopID)
	assert.Equal(t, "owner", transferred.OwnerID, "owner of record never changes")

	_, err = f.uc.TransferToShop(ctx, "owner", listing.ID, "missing-shop")
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestGetListingMasksHiddenListings(t *testing.T) {
	f := newListingFixture(t)
	f.seedUser(t, "owner", entity.RoleUser)
	f.seedUser(t, "stranger", entity.RoleUser)
	ctx := context.Background()

	listing, err := f.uc.CreateListing(ctx, "owner", CreateListingInput{
		Category: entity.CategoryItem,
		Title:    "Projector",
		Price:    150,
		Status:   entity.StatusPassive,
	})
	require.NoError(t, err)

	// Hidden listings are indistinguishable from missing ones.
	_, err = f.uc.GetListing(ctx, "stranger", listing.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	_, err = f.uc.GetListing(ctx, "", listing.ID)
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	got, err := f.uc.GetListing(ctx, "owner", listing.ID)
	require.NoError(t, err)
	assert.Equal(t, listing.ID, got.ID)
}

func TestBrowseListingsRankedAndPaged(t *testing.T) {
	f := newListingFixture(t)
	f.seedUser(t, "owner", entity.RoleUser)
	ctx := context.Background()

	boosted, err := f.uc.CreateListing(ctx, "owner", CreateListingInput{
		Category: entity.CategoryItem, Title: "Boosted", Price: 10,
	})
	require.NoError(t, err)
	_, err = f.uc.BoostListing(ctx, "owner", boosted.ID, time.Hour)
	require.NoError(t, err)

	popular, err := f.uc.CreateListing(ctx, "owner", CreateListingInput{
		Category: entity.CategoryItem, Title: "Popular", Price: 10,
	})
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, f.store.Listings().IncrementViews(ctx, popular.ID))
	}

	quiet, err := f.uc.CreateListing(ctx, "owner", CreateListingInput{
		Category: entity.CategoryItem, Title: "Quiet", Price: 10,
	})
	require.NoError(t, err)

	// Passive listings never appear in browse.
	hidden, err := f.uc.CreateListing(ctx, "owner", CreateListingInput{
		Category: entity.CategoryItem, Title: "Hidden", Price: 10, Status: entity.StatusPassive,
	})
	require.NoError(t, err)

	listings, total, err := f.uc.BrowseListings(ctx, "", "", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, listings, 3)
	assert.Equal(t, boosted.ID, listings[0].ID)
	assert.Equal(t, popular.ID, listings[1].ID)
	assert.Equal(t, quiet.ID, listings[2].ID)
	for _, l := range listings {
		assert.NotEqual(t, hidden.ID, l.ID)
	}

	// Pagination slices the ranked order.
	page, total, err := f.uc.BrowseListings(ctx, "", "", 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, popular.ID, page[0].ID)
}
