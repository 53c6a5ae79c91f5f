package query

import (
	"github.com/akagifreeez/trade-values/internal/models"
)

// Query runs the full pipeline over items: filter, then category tab, then sort.
// It always returns a new slice; items is never modified.
func Query(items []models.Item, cfg models.FilterConfig, tab string) []models.Item {
	pred := BuildPredicate(cfg)

	result := make([]models.Item, 0, len(items))
	for _, item := range items {
		if !pred(item) {
			continue
		}
		if !inTab(item, tab) {
			continue
		}
		result = append(result, item)
	}

	Sort(result, cfg.SortBy)
	return result
}

// QueryTab restricts items to a category tab and nothing else, keeping catalog order.
// It is the tab-change entry point, which does not re-apply the last filter.
func QueryTab(items []models.Item, tab string) []models.Item {
	result := make([]models.Item, 0, len(items))
	for _, item := range items {
		if inTab(item, tab) {
			result = append(result, item)
		}
	}
	return result
}

func inTab(item models.Item, tab string) bool {
	return tab == "" || tab == models.TabAll || item.Category == tab
}
