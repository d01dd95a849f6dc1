package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		allowed bool
	}{
		{"active to passive", StatusActive, StatusPassive, true},
		{"active to out_of_stock", StatusActive, StatusOutOfStock, true},
		{"passive to active", StatusPassive, StatusActive, true},
		{"out_of_stock to active", StatusOutOfStock, StatusActive, true},
		{"passive to out_of_stock", StatusPassive, StatusOutOfStock, false},
		{"out_of_stock to passive", StatusOutOfStock, StatusPassive, false},
		{"sold is never a source", StatusSold, StatusActive, false},
		{"sold is never a target", StatusActive, StatusSold, false},
		{"no self transition", StatusActive, StatusActive, false},
		{"unknown status", "archived", StatusActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsBoosted(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	assert.False(t, (&Listing{}).IsBoosted(now))
	assert.True(t, (&Listing{BoostedUntil: &future}).IsBoosted(now))
	assert.False(t, (&Listing{BoostedUntil: &past}).IsBoosted(now))
	assert.False(t, (&Listing{BoostedUntil: &now}).IsBoosted(now))
}

func TestSellerAccountID(t *testing.T) {
	personal := &Listing{OwnerID: "user-1"}
	assert.Equal(t, "user-1", personal.SellerAccountID())

	shopManaged := &Listing{OwnerID: "user-1", ShopID: "shop-1"}
	assert.Equal(t, "shop-1", shopManaged.SellerAccountID())
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory(CategoryVehicle))
	assert.True(t, ValidCategory(CategoryRealEstate))
	assert.True(t, ValidCategory(CategoryItem))
	assert.True(t, ValidCategory(CategoryService))
	assert.False(t, ValidCategory("boat"))
	assert.False(t, ValidCategory(""))
}
