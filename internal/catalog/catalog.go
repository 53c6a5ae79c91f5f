package catalog

import (
	"errors"
	"fmt"

	"github.com/akagifreeez/trade-values/internal/models"
)

// DefaultSimilarLimit is how many similar items an item detail page shows
const DefaultSimilarLimit = 5

var ErrDuplicateID = errors.New("duplicate item id")

// Catalog is the loaded, read-only item catalog. It is safe for concurrent use
// because nothing mutates it after New returns.
type Catalog struct {
	items      []models.Item
	byID       map[int64]int
	categories []string
}

// New builds a catalog from items, keeping their order. Item ids must be unique.
func New(items []models.Item) (*Catalog, error) {
	c := &Catalog{
		items: make([]models.Item, len(items)),
		byID:  make(map[int64]int, len(items)),
	}
	copy(c.items, items)

	seen := make(map[string]bool)
	for i, item := range c.items {
		if _, dup := c.byID[item.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, item.ID)
		}
		c.byID[item.ID] = i

		if !seen[item.Category] {
			seen[item.Category] = true
			c.categories = append(c.categories, item.Category)
		}
	}
	return c, nil
}

// Items returns the catalog in load order. Callers must not modify the slice.
func (c *Catalog) Items() []models.Item {
	return c.items
}

// Len returns the number of items
func (c *Catalog) Len() int {
	return len(c.items)
}

// FindByID looks an item up by id
func (c *Catalog) FindByID(id int64) (models.Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return models.Item{}, false
	}
	return c.items[i], true
}

// Similar returns up to limit other items of the same category, in catalog order
func (c *Catalog) Similar(item models.Item, limit int) []models.Item {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	similar := make([]models.Item, 0, limit)
	for _, other := range c.items {
		if len(similar) == limit {
			break
		}
		if other.ID != item.ID && other.Category == item.Category {
			similar = append(similar, other)
		}
	}
	return similar
}

// Tabs returns the category tabs: "all" followed by each category in first-seen order
func (c *Catalog) Tabs() []string {
	tabs := make([]string, 0, len(c.categories)+1)
	tabs = append(tabs, models.TabAll)
	return append(tabs, c.categories...)
}
