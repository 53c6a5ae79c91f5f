package query

import (
	"cmp"
	"slices"

	"github.com/akagifreeez/trade-values/internal/models"
)

// Comparator orders two items, returning -1, 0 or 1
type Comparator func(a, b models.Item) int

var comparators = map[models.SortKey]Comparator{
	models.SortByCategory: func(a, b models.Item) int { return 0 },
	models.SortNewest:     func(a, b models.Item) int { return cmp.Compare(b.ID, a.ID) },
	models.SortOldest:     func(a, b models.Item) int { return cmp.Compare(a.ID, b.ID) },
	models.SortValueLowToHigh: func(a, b models.Item) int {
		return compareValues(a, b, false)
	},
	models.SortValueHighToLow: func(a, b models.Item) int {
		return compareValues(a, b, true)
	},
}

// ComparatorFor returns the comparator registered for key.
// Unknown keys get the identity ordering of byCategory.
func ComparatorFor(key models.SortKey) Comparator {
	if c, ok := comparators[key]; ok {
		return c
	}
	return comparators[models.SortByCategory]
}

// IsSortKey reports whether key has a registered comparator
func IsSortKey(key models.SortKey) bool {
	_, ok := comparators[key]
	return ok
}

// compareValues orders by base value with items lacking one always last,
// whichever direction is requested.
func compareValues(a, b models.Item, desc bool) int {
	av, bv := a.BaseValueNum, b.BaseValueNum
	switch {
	case !av.Valid && !bv.Valid:
		return 0
	case !av.Valid:
		return 1
	case !bv.Valid:
		return -1
	}
	if desc {
		return cmp.Compare(bv.Float64, av.Float64)
	}
	return cmp.Compare(av.Float64, bv.Float64)
}

// Sort stably sorts items in place by key
func Sort(items []models.Item, key models.SortKey) {
	if key == models.SortByCategory {
		return
	}
	slices.SortStableFunc(items, ComparatorFor(key))
}
