package query

import "github.com/akagifreeez/trade-values/internal/models"

// ListView is the state of one paginated catalog list.
//
// It keeps the two update paths of the list page apart: ApplyFilter runs the
// whole pipeline with the current tab, while SelectTab re-lists the raw catalog
// restricted to the new tab only. The last filter is remembered and applied
// again (with the new tab) by the next ApplyFilter call.
type ListView struct {
	catalog  []models.Item
	pageSize int

	filter  models.FilterConfig
	tab     string
	page    int
	results []models.Item
}

// NewListView creates a view over catalog showing every item in catalog order
func NewListView(catalog []models.Item, pageSize int) *ListView {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &ListView{
		catalog:  catalog,
		pageSize: pageSize,
		filter:   models.DefaultFilter(),
		tab:      models.TabAll,
		page:     1,
		results:  catalog,
	}
}

// ApplyFilter re-runs the pipeline with cfg and the active tab and resets to page 1
func (v *ListView) ApplyFilter(cfg models.FilterConfig) Page {
	v.filter = cfg
	v.results = Query(v.catalog, cfg, v.tab)
	v.page = 1
	return v.Current()
}

// SelectTab switches the category tab and resets to page 1
func (v *ListView) SelectTab(tab string) Page {
	if tab == "" {
		tab = models.TabAll
	}
	v.tab = tab
	v.results = QueryTab(v.catalog, tab)
	v.page = 1
	return v.Current()
}

// GoTo moves to page, clamped to the available pages
func (v *ListView) GoTo(page int) Page {
	v.page = ClampPage(page, TotalPages(len(v.results), v.pageSize))
	return v.Current()
}

// Next moves one page forward, stopping at the last page
func (v *ListView) Next() Page {
	return v.GoTo(v.page + 1)
}

// Prev moves one page back, stopping at the first page
func (v *ListView) Prev() Page {
	return v.GoTo(v.page - 1)
}

// Current returns the page currently shown
func (v *ListView) Current() Page {
	return Paginate(v.results, v.page, v.pageSize)
}

// Links returns the pagination control for the current page
func (v *ListView) Links() []PageLink {
	return PageLinks(v.page, TotalPages(len(v.results), v.pageSize))
}

// Filter returns the last applied filter configuration
func (v *ListView) Filter() models.FilterConfig { return v.filter }

// Tab returns the active category tab
func (v *ListView) Tab() string { return v.tab }

// Results returns the full ordered result list behind the pages
func (v *ListView) Results() []models.Item { return v.results }

// CalculatorView is the item picker of the trade calculator: the pipeline over
// the whole catalog with no tab and no pagination.
type CalculatorView struct {
	catalog []models.Item
	filter  models.FilterConfig
	results []models.Item
}

// NewCalculatorView creates a picker showing the whole catalog
func NewCalculatorView(catalog []models.Item) *CalculatorView {
	return &CalculatorView{
		catalog: catalog,
		filter:  models.DefaultFilter(),
		results: catalog,
	}
}

// ApplyFilter re-runs the pipeline with cfg
func (v *CalculatorView) ApplyFilter(cfg models.FilterConfig) []models.Item {
	v.filter = cfg
	v.results = Query(v.catalog, cfg, models.TabAll)
	return v.results
}

// Results returns the current picker list
func (v *CalculatorView) Results() []models.Item { return v.results }

// Filter returns the last applied filter configuration
func (v *CalculatorView) Filter() models.FilterConfig { return v.filter }
