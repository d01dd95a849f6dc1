package repository

import (
	"sync"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
	"github.com/fexraizen/lister-sub001/internal/domain/repository"
)

// MemoryStore backs all repositories with in-process maps guarded by one
// lock, so local runs and tests get the same transactional behavior the
// Firestore adapters provide. Settlements take the write lock for their
// whole critical section.
type MemoryStore struct {
	mu          sync.RWMutex
	listings    map[string]*entity.Listing
	shops       map[string]*entity.Shop
	memberships map[string]*entity.ShopMembership
	wallets     map[string]*entity.Wallet
	receipts    map[string]*entity.Receipt
	users       map[string]*entity.User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		listings:    make(map[string]*entity.Listing),
		shops:       make(map[string]*entity.Shop),
		memberships: make(map[string]*entity.ShopMembership),
		wallets:     make(map[string]*entity.Wallet),
		receipts:    make(map[string]*entity.Receipt),
		users:       make(map[string]*entity.User),
	}
}

func (s *MemoryStore) Listings() repository.ListingRepository {
	return &memoryListingRepository{store: s}
}

func (s *MemoryStore) Shops() repository.ShopRepository {
	return &memoryShopRepository{store: s}
}

func (s *MemoryStore) Memberships() repository.MembershipRepository {
	return &memoryMembershipRepository{store: s}
}

func (s *MemoryStore) Wallets() repository.Ledger {
	return &memoryWalletRepository{store: s}
}

func (s *MemoryStore) Settlements() repository.SettlementRepository {
	return &memorySettlementRepository{store: s}
}

func (s *MemoryStore) Receipts() repository.ReceiptRepository {
	return &memoryReceiptRepository{store: s}
}

func (s *MemoryStore) Users() repository.UserRepository {
	return &memoryUserRepository{store: s}
}

func membershipKey(shopID, userID string) string {
	return shopID + "_" + userID
}

func cloneListing(l *entity.Listing) *entity.Listing {
	copied := *l
	if l.BoostedUntil != nil {
		t := *l.BoostedUntil
		copied.BoostedUntil = &t
	}
	if l.Vehicle != nil {
		v := *l.Vehicle
		copied.Vehicle = &v
	}
	return &copied
}

func cloneShop(s *entity.Shop) *entity.Shop {
	copied := *s
	return &copied
}

func cloneMembership(m *entity.ShopMembership) *entity.ShopMembership {
	copied := *m
	return &copied
}

func cloneWallet(w *entity.Wallet) *entity.Wallet {
	copied := *w
	return &copied
}

func cloneReceipt(r *entity.Receipt) *entity.Receipt {
	copied := *r
	return &copied
}

func cloneUser(u *entity.User) *entity.User {
	copied := *u
	return &copied
}
