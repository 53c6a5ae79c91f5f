package query

import "github.com/akagifreeez/trade-values/internal/models"

// DefaultPageSize is the number of items shown per list page
const DefaultPageSize = 20

// linkWindow is how many pages either side of the current one get a link
const linkWindow = 2

// Page is one slice of an ordered result list
type Page struct {
	Items      []models.Item `json:"items"`
	Number     int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	TotalItems int           `json:"total_items"`
}

// TotalPages returns how many pages of size hold n items
func TotalPages(n, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	return (n + size - 1) / size
}

// ClampPage moves page into [1, totalPages]. With no pages at all it returns 1.
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate returns the 1-indexed page of items. Out of range page numbers are clamped.
func Paginate(items []models.Item, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := TotalPages(len(items), size)
	page = ClampPage(page, total)

	start := (page - 1) * size
	end := start + size
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	pageItems := make([]models.Item, end-start)
	copy(pageItems, items[start:end])

	return Page{
		Items:      pageItems,
		Number:     page,
		TotalPages: total,
		TotalItems: len(items),
	}
}

// PageLink is one entry of the pagination control. Ellipsis entries have Page 0.
type PageLink struct {
	Page     int  `json:"page,omitempty"`
	Current  bool `json:"current,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// PageLinks lists the page links to show: the first and last pages, the pages
// within two of the current one, and an ellipsis for every gap between them.
// A single page (or none) needs no control, so the result is empty.
func PageLinks(current, totalPages int) []PageLink {
	if totalPages <= 1 {
		return nil
	}
	current = ClampPage(current, totalPages)

	var links []PageLink
	last := 0
	for p := 1; p <= totalPages; p++ {
		if p != 1 && p != totalPages && (p < current-linkWindow || p > current+linkWindow) {
			continue
		}
		if last != 0 && p > last+1 {
			links = append(links, PageLink{Ellipsis: true})
		}
		links = append(links, PageLink{Page: p, Current: p == current})
		last = p
	}
	return links
}
