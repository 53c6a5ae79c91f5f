package models

// SortKey selects one of the registered item orderings
type SortKey string

const (
	SortByCategory     SortKey = "byCategory"
	SortNewest         SortKey = "newest"
	SortOldest         SortKey = "oldest"
	SortValueLowToHigh SortKey = "valueLowToHigh"
	SortValueHighToLow SortKey = "valueHighToLow"
)

// TabAll is the category tab that applies no category restriction
const TabAll = "all"

// ValueRange holds the raw text of the value range inputs.
// Either side may be empty or non-numeric, which disables that side.
type ValueRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// FilterConfig is the state of the filter control for one view
type FilterConfig struct {
	Search     string          `json:"search"`
	Type       map[string]bool `json:"type"`
	Status     map[Trend]bool  `json:"status"`
	SortBy     SortKey         `json:"sortBy"`
	ValueRange ValueRange      `json:"valueRange"`
}

// DefaultFilter returns the filter control's initial state, which is also what
// its reset button restores: every type and trend checked, catalog order, no range.
func DefaultFilter() FilterConfig {
	types := make(map[string]bool, len(ItemTypes))
	for _, t := range ItemTypes {
		types[t] = true
	}
	statuses := make(map[Trend]bool, len(Trends))
	for _, t := range Trends {
		statuses[t] = true
	}
	return FilterConfig{
		Type:   types,
		Status: statuses,
		SortBy: SortByCategory,
	}
}
