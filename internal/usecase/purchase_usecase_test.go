package usecase

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterrepo "github.com/fexraizen/lister-sub001/internal/adapter/repository"
	"github.com/fexraizen/lister-sub001/internal/domain/entity"
	"github.com/fexraizen/lister-sub001/internal/domain/service"
	"github.com/fexraizen/lister-sub001/pkg/errors"
)

type nopNotifier struct{}

func (nopNotifier) Notify(userID, title, message string)            {}
func (nopNotifier) NotifyBulk(userIDs []string, title, message string) {}

type purchaseFixture struct {
	store *adapterrepo.MemoryStore
	uc    *PurchaseUseCase
}

func newPurchaseFixture(t *testing.T) *purchaseFixture {
	t.Helper()

	store := adapterrepo.NewMemoryStore()
	resolver := service.NewResolver(store.Memberships(), store.Shops(), store.Wallets())
	uc := NewPurchaseUseCase(
		store.Listings(),
		store.Receipts(),
		store.Settlements(),
		store.Users(),
		resolver,
		nopNotifier{},
	)
	return &purchaseFixture{store: store, uc: uc}
}

func (f *purchaseFixture) seedUser(t *testing.T, id string, balance float64) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.store.Users().Create(ctx, &entity.User{
		ID:       id,
		Email:    id + "@example.com",
		Username: id,
		Role:     entity.RoleUser,
	}))
	if balance > 0 {
		require.NoError(t, f.store.Wallets().Credit(ctx, id, balance))
	}
}

func (f *purchaseFixture) seedListing(t *testing.T, listing *entity.Listing) {
	t.Helper()
	require.NoError(t, f.store.Listings().Create(context.Background(), listing))
}

func (f *purchaseFixture) balance(t *testing.T, accountID string) float64 {
	t.Helper()
	balance, err := f.store.Wallets().BalanceOf(context.Background(), accountID)
	require.NoError(t, err)
	return balance
}

func TestPurchaseSettles(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	f.seedUser(t, "seller", 0)
	f.seedUser(t, "buyer", 100)
	f.seedListing(t, &entity.Listing{
		ID:       "listing-1",
		OwnerID:  "seller",
		Category: entity.CategoryItem,
		Title:    "Record player",
		Price:    75,
		Status:   entity.StatusActive,
	})

	receipt, err := f.uc.Purchase(ctx, "buyer", "listing-1", 75)
	require.NoError(t, err)
	require.NotNil(t, receipt)

	assert.NotEmpty(t, receipt.ID)
	assert.Equal(t, "listing-1", receipt.ListingID)
	assert.Equal(t, "buyer", receipt.BuyerID)
	assert.Equal(t, "seller", receipt.SellerID)
	assert.Equal(t, 75.0, receipt.Price)

	assert.Equal(t, 25.0, f.balance(t, "buyer"))
	assert.Equal(t, 75.0, f.balance(t, "seller"))

	listing, err := f.store.Listings().GetByID(ctx, "listing-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSold, listing.Status)

	stored, err := f.store.Receipts().GetByID(ctx, receipt.ID)
	require.NoError(t, err)
	assert.Equal(t, receipt.BuyerID, stored.BuyerID)
}

func TestPurchaseShopListingCreditsShopAccount(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	f.seedUser(t, "seller", 0)
	f.seedUser(t, "buyer", 200)
	require.NoError(t, f.store.Shops().Create(ctx,
		&entity.Shop{ID: "shop-1", Name: "Parts Depot"},
		&entity.ShopMembership{ShopID: "shop-1", UserID: "seller", Role: entity.RoleShopOwner},
	))
	f.seedListing(t, &entity.Listing{
		ID:       "listing-1",
		OwnerID:  "seller",
		ShopID:   "shop-1",
		Category: entity.CategoryItem,
		Title:    "Brake pads",
		Price:    120,
		Status:   entity.StatusActive,
	})

	receipt, err := f.uc.Purchase(ctx, "buyer", "listing-1", 120)
	require.NoError(t, err)

	assert.Equal(t, "seller", receipt.SellerID)
	assert.Equal(t, "shop-1", receipt.ShopID)
	assert.Equal(t, 120.0, f.balance(t, "shop-1"))
	assert.Equal(t, 0.0, f.balance(t, "seller"))
	assert.Equal(t, 80.0, f.balance(t, "buyer"))
}

func TestPurchaseInsufficientBalance(t *testing.T) {
	f := newPurchaseFixture(t)

	f.seedUser(t, "seller", 0)
	f.seedUser(t, "buyer", 10)
	f.seedListing(t, &entity.Listing{
		ID:       "listing-1",
		OwnerID:  "seller",
		Category: entity.CategoryItem,
		Title:    "Camera",
		Price:    50,
		Status:   entity.StatusActive,
	})

	_, err := f.uc.Purchase(context.Background(), "buyer", "listing-1", 50)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
	assert.Equal(t, errors.ReasonInsufficientBalance, errors.ReasonOf(err))

	// Nothing moved.
	assert.Equal(t, 10.0, f.balance(t, "buyer"))
	assert.Equal(t, 0.0, f.balance(t, "seller"))

	listing, err := f.store.Listings().GetByID(context.Background(), "listing-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusActive, listing.Status)
}

func TestPurchasePriceMismatch(t *testing.T) {
	f := newPurchaseFixture(t)

	f.seedUser(t, "seller", 0)
	f.seedUser(t, "buyer", 100)
	f.seedListing(t, &entity.Listing{
		ID:       "listing-1",
		OwnerID:  "seller",
		Category: entity.CategoryItem,
		Title:    "Desk",
		Price:    60,
		Status:   entity.StatusActive,
	})

	_, err := f.uc.Purchase(context.Background(), "buyer", "listing-1", 45)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "PRICE_MISMATCH"))
	assert.Equal(t, 100.0, f.balance(t, "buyer"))
}

func TestPurchaseOwnListingRejected(t *testing.T) {
	f := newPurchaseFixture(t)

	f.seedUser(t, "seller", 1000)
	f.seedListing(t, &entity.Listing{
		ID:       "listing-1",
		OwnerID:  "seller",
		Category: entity.CategoryItem,
		Title:    "Couch",
		Price:    40,
		Status:   entity.StatusActive,
	})

	_, err := f.uc.Purchase(context.Background(), "seller", "listing-1", 40)
	require.Error(t, err)
	assert.Equal(t, errors.ReasonSelfPurchase, errors.ReasonOf(err))
}

func TestPurchaseAnonymousRejected(t *testing.T) {
	f := newPurchaseFixture(t)

	f.seedUser(t, "seller", 0)
	f.seedListing(t, &entity.Listing{
		ID:       "listing-1",
		OwnerID:  "seller",
		Category: entity.CategoryItem,
		Title:    "Lamp",
		Price:    15,
		Status:   entity.StatusActive,
	})

	_, err := f.uc.Purchase(context.Background(), "", "listing-1", 15)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestPurchaseSoldListingRejected(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	f.seedUser(t, "seller", 0)
	f.seedUser(t, "first", 100)
	f.seedUser(t, "second", 100)
	f.seedListing(t, &entity.Listing{
		ID:       "listing-1",
		OwnerID:  "seller",
		Category: entity.CategoryItem,
		Title:    "Keyboard",
		Price:    30,
		Status:   entity.StatusActive,
	})

	_, err := f.uc.Purchase(ctx, "first", "listing-1", 30)
	require.NoError(t, err)

	_, err = f.uc.Purchase(ctx, "second", "listing-1", 30)
	require.Error(t, err)
	assert.True(t, errors.Is(err, "ALREADY_SOLD"))

	// The loser keeps their money.
	assert.Equal(t, 100.0, f.balance(t, "second"))
	assert.Equal(t, 30.0, f.balance(t, "seller"))
}

func TestPurchaseConcurrentBuyersExactlyOneWins(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	f.seedUser(t, "seller", 0)
	f.seedListing(t, &entity.Listing{
		ID:       "listing-1",
		OwnerID:  "seller",
		Category: entity.CategoryItem,
		Title:    "Turntable",
		Price:    55,
		Status:   entity.StatusActive,
	})

	const buyers = 16
	buyerIDs := make([]string, buyers)
	for i := range buyerIDs {
		buyerIDs[i] = "buyer-" + string(rune('a'+i))
		f.seedUser(t, buyerIDs[i], 100)
	}

	var wg sync.WaitGroup
	results := make([]error, buyers)
	for i, buyerID := range buyerIDs {
		wg.Add(1)
		go func(i int, buyerID string) {
			defer wg.Done()
			_, results[i] = f.uc.Purchase(ctx, buyerID, "listing-1", 55)
		}(i, buyerID)
	}
	wg.Wait()

	wins := 0
	for i, err := range results {
		if err == nil {
			wins++
			assert.Equal(t, 45.0, f.balance(t, buyerIDs[i]))
		} else {
			assert.True(t, errors.Is(err, "ALREADY_SOLD"), "loser must see ALREADY_SOLD, got %v", err)
			assert.Equal(t, 100.0, f.balance(t, buyerIDs[i]))
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 55.0, f.balance(t, "seller"))
}

func TestGetReceiptAccess(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	f.seedUser(t, "seller", 0)
	f.seedUser(t, "buyer", 100)
	f.seedUser(t, "bystander", 0)
	require.NoError(t, f.store.Users().Create(ctx, &entity.User{
		ID: "admin", Email: "admin@example.com", Username: "admin", Role: entity.RoleAdmin,
	}))
	f.seedListing(t, &entity.Listing{
		ID:       "listing-1",
		OwnerID:  "seller",
		Category: entity.CategoryItem,
		Title:    "Monitor",
		Price:    90,
		Status:   entity.StatusActive,
	})

	receipt, err := f.uc.Purchase(ctx, "buyer", "listing-1", 90)
	require.NoError(t, err)

	for _, actorID := range []string{"buyer", "seller", "admin"} {
		got, err := f.uc.GetReceipt(ctx, actorID, receipt.ID)
		require.NoError(t, err, "actor %s", actorID)
		assert.Equal(t, receipt.ID, got.ID)
	}

	_, err = f.uc.GetReceipt(ctx, "bystander", receipt.ID)
	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestListPurchasesAndSales(t *testing.T) {
	f := newPurchaseFixture(t)
	ctx := context.Background()

	f.seedUser(t, "seller", 0)
	f.seedUser(t, "buyer", 300)
	for _, id := range []string{"a", "b"} {
		f.seedListing(t, &entity.Listing{
			ID:       "listing-" + id,
			OwnerID:  "seller",
			Category: entity.CategoryItem,
			Title:    "Item " + id,
			Price:    50,
			Status:   entity.StatusActive,
		})
		_, err := f.uc.Purchase(ctx, "buyer", "listing-"+id, 50)
		require.NoError(t, err)
	}

	purchases, total, err := f.uc.ListPurchases(ctx, "buyer", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, purchases, 2)

	sales, total, err := f.uc.ListSales(ctx, "seller", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, sales, 2)
}
