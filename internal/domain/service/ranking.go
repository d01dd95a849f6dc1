package service

import (
	"sort"
	"time"

	"github.com/fexraizen/lister-sub001/internal/domain/entity"
)

// Rank produces the browse order for a set of listings: every listing with
// an active boost window sorts before every unboosted one, each tier is
// ordered by view count descending, and ties keep their input order. The
// sort is stable so repeated calls on the same snapshot yield an identical
// ordering. The input slice is not modified.
func Rank(listings []*entity.Listing, now time.Time) []*entity.Listing {
	ranked := make([]*entity.Listing, len(listings))
	copy(ranked, listings)

	sort.SliceStable(ranked, func(i, j int) bool {
		bi, bj := ranked[i].IsBoosted(now), ranked[j].IsBoosted(now)
		if bi != bj {
			return bi
		}
		return ranked[i].Views > ranked[j].Views
	})

	return ranked
}
