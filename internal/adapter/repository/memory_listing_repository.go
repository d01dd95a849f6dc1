package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
	"github.com/fexraizen/lister-sub001/pkg/errors"
)

type memoryListingRepository struct {
	store *MemoryStore
}

func (r *memoryListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if listing.ID == "" {
		listing.ID = uuid.New().String()
	}
	now := time.Now()
	listing.CreatedAt = now
	listing.UpdatedAt = now
	listing.Views = 0

	r.store.listings[listing.ID] = cloneListing(listing)
	return nil
}

func (r *memoryListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	listing, ok := r.store.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing not found", nil)
	}
	return cloneListing(listing), nil
}

func (r *memoryListingRepository) List(ctx context.Context, filter map[string]interface{}, sortKey string, limit, offset int) ([]*entity.Listing, int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var matched []*entity.Listing
	for _, listing := range r.store.listings {
		if matchesFilter(listing, filter) {
			matched = append(matched, cloneListing(listing))
		}
	}

	sortListings(matched, sortKey)
	total := int64(len(matched))

	return paginateListings(matched, limit, offset), total, nil
}

func matchesFilter(l *entity.Listing, filter map[string]interface{}) bool {
	for key, value := range filter {
		want, _ := value.(string)
		switch key {
		case "status":
			if l.Status != want {
				return false
			}
		case "category":
			if l.Category != want {
				return false
			}
		case "shopId":
			if l.ShopID != want {
				return false
			}
		case "ownerId":
			if l.OwnerID != want {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func sortListings(listings []*entity.Listing, sortKey string) {
	field := "createdAt"
	desc := true
	if sortKey != "" {
		parts := strings.Split(sortKey, "_")
		field = parts[0]
		desc = len(parts) > 1 && parts[1] == "desc"
	}

	less := func(a, b *entity.Listing) bool {
		switch field {
		case "price":
			return a.Price < b.Price
		case "views":
			return a.Views < b.Views
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(listings, func(i, j int) bool {
		if desc {
			return less(listings[j], listings[i])
		}
		return less(listings[i], listings[j])
	})
}

func paginateListings(listings []*entity.Listing, limit, offset int) []*entity.Listing {
	if offset >= len(listings) {
		return []*entity.Listing{}
	}
	end := len(listings)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return listings[offset:end]
}

func (r *memoryListingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.listings[listing.ID]
	if !ok {
		return errors.NotFound("Listing not found", nil)
	}

	listing.CreatedAt = stored.CreatedAt
	listing.UpdatedAt = time.Now()
	r.store.listings[listing.ID] = cloneListing(listing)
	return nil
}

func (r *memoryListingRepository) Delete(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.listings[id]; !ok {
		return errors.NotFound("Listing not found", nil)
	}
	delete(r.store.listings, id)
	return nil
}

func (r *memoryListingRepository) IncrementViews(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	listing, ok := r.store.listings[id]
	if !ok {
		return errors.NotFound("Listing not found", nil)
	}
	listing.Views++
	return nil
}

func (r *memoryListingRepository) ListByOwnerID(ctx context.Context, ownerID string, status string, limit, offset int) ([]*entity.Listing, int64, error) {
	filter := map[string]interface{}{"ownerId": ownerID}
	if status != "" {
		filter["status"] = status
	}
	return r.List(ctx, filter, "", limit, offset)
}

func (r *memoryListingRepository) ListByShopID(ctx context.Context, shopID string, status string, limit, offset int) ([]*entity.Listing, int64, error) {
	filter := map[string]interface{}{"shopId": shopID}
	if status != "" {
		filter["status"] = status
	}
	return r.List(ctx, filter, "", limit, offset)
}

// UpdateStatus is the compare-and-set backing ChangeStatus. Under the store
// lock the stored status is re-read so a settlement that already flipped the
// listing to sold wins.
func (r *memoryListingRepository) UpdateStatus(ctx context.Context, id string, from, to string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	listing, ok := r.store.listings[id]
	if !ok {
		return errors.NotFound("Listing not found", nil)
	}

	if listing.Status != from {
		if listing.Status == entity.StatusSold {
			return errors.AlreadySold("Listing has already been sold")
		}
		return errors.InvalidTransition("Listing status changed concurrently")
	}

	listing.Status = to
	listing.UpdatedAt = time.Now()
	return nil
}
