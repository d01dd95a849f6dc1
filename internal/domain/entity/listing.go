package entity

import (
	"time"
)

// Listing categories
const (
	CategoryVehicle    = "vehicle"
	CategoryRealEstate = "real_estate"
	CategoryItem       = "item"
	CategoryService    = "service"
)

// Listing statuses. Sold is terminal: it is only ever set by a successful
// purchase settlement and no transition leads out of it.
const (
	StatusActive     = "active"
	StatusPassive    = "passive"
	StatusOutOfStock = "out_of_stock"
	StatusSold       = "sold"
)

// VehicleSpecs holds the attributes that only vehicle listings carry.
type VehicleSpecs struct {
	Mileage  int `json:"mileage" firestore:"mileage"`
	TopSpeed int `json:"top_speed" firestore:"topSpeed"`
}

type Listing struct {
	ID          string        `json:"id" firestore:"id"`
	OwnerID     string        `json:"owner_id" firestore:"ownerId"`
	ShopID      string        `json:"shop_id,omitempty" firestore:"shopId,omitempty"`
	Category    string        `json:"category" firestore:"category"`
	Title       string        `json:"title" firestore:"title"`
	Description string        `json:"description" firestore:"description"`
	Price       float64       `json:"price" firestore:"price"`
	Status      string        `json:"status" firestore:"status"`
	Views       int           `json:"views" firestore:"views"`
	BoostedUntil *time.Time   `json:"boosted_until,omitempty" firestore:"boostedUntil,omitempty"`
	Vehicle     *VehicleSpecs `json:"vehicle,omitempty" firestore:"vehicle,omitempty"`
	CreatedAt   time.Time     `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time     `json:"updated_at" firestore:"updatedAt"`
}

// IsBoosted reports whether the listing holds an active promotion window at
// the given instant.
func (l *Listing) IsBoosted(now time.Time) bool {
	return l.BoostedUntil != nil && now.Before(*l.BoostedUntil)
}

// SellerAccountID returns the settlement account credited on purchase: the
// shop when the listing is shop-managed, otherwise the owner.
func (l *Listing) SellerAccountID() string {
	if l.ShopID != "" {
		return l.ShopID
	}
	return l.OwnerID
}

func ValidCategory(category string) bool {
	switch category {
	case CategoryVehicle, CategoryRealEstate, CategoryItem, CategoryService:
		return true
	}
	return false
}

// CanTransition reports whether an explicit status change is legal.
// active <-> passive, active <-> out_of_stock, and back to active; sold is
// absorbing and never a legal explicit target.
func CanTransition(from, to string) bool {
	if from == StatusSold || to == StatusSold {
		return false
	}
	if from == to {
		return false
	}
	switch from {
	case StatusActive:
		return to == StatusPassive || to == StatusOutOfStock
	case StatusPassive, StatusOutOfStock:
		return to == StatusActive
	}
	return false
}
