package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
)

func boostedListing(id string, views int, until time.Time) *entity.Listing {
	return &entity.Listing{ID: id, Views: views, BoostedUntil: &until}
}

func plainListing(id string, views int) *entity.Listing {
	return &entity.Listing{ID: id, Views: views}
}

func rankedIDs(listings []*entity.Listing) []string {
	ids := make([]string, len(listings))
	for i, l := range listings {
		ids[i] = l.ID
	}
	return ids
}

func TestRankBoostedBeforeUnboosted(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)

	listings := []*entity.Listing{
		plainListing("plain-popular", 1000),
		boostedListing("boosted-quiet", 0, future),
	}

	ranked := Rank(listings, now)

	assert.Equal(t, []string{"boosted-quiet", "plain-popular"}, rankedIDs(ranked))
}

func TestRankViewsDescendingWithinTier(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)

	listings := []*entity.Listing{
		boostedListing("b-low", 5, future),
		plainListing("p-high", 90),
		boostedListing("b-high", 50, future),
		plainListing("p-low", 10),
	}

	ranked := Rank(listings, now)

	assert.Equal(t, []string{"b-high", "b-low", "p-high", "p-low"}, rankedIDs(ranked))
}

func TestRankExpiredBoostCountsAsUnboosted(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)

	listings := []*entity.Listing{
		boostedListing("expired", 100, past),
		boostedListing("live", 1, now.Add(time.Minute)),
	}

	ranked := Rank(listings, now)

	assert.Equal(t, []string{"live", "expired"}, rankedIDs(ranked))
}

func TestRankTiesKeepInputOrder(t *testing.T) {
	now := time.Now()

	listings := []*entity.Listing{
		plainListing("first", 42),
		plainListing("second", 42),
		plainListing("third", 42),
	}

	ranked := Rank(listings, now)

	assert.Equal(t, []string{"first", "second", "third"}, rankedIDs(ranked))

	// Repeated runs over the same snapshot are identical.
	again := Rank(listings, now)
	assert.Equal(t, rankedIDs(ranked), rankedIDs(again))
}

func TestRankDoesNotMutateInput(t *testing.T) {
	now := time.Now()

	listings := []*entity.Listing{
		plainListing("a", 1),
		plainListing("b", 9),
	}

	Rank(listings, now)

	assert.Equal(t, []string{"a", "b"}, rankedIDs(listings))
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil, time.Now()))
}
