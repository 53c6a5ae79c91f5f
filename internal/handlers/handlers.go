package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/akagifreeez/trade-values/internal/catalog"
	"github.com/akagifreeez/trade-values/internal/models"
	"github.com/akagifreeez/trade-values/internal/query"
	"github.com/akagifreeez/trade-values/internal/services"
)

// ListResponse is one page of a catalog listing with its pagination control
type ListResponse struct {
	query.Page
	Links []query.PageLink `json:"links"`
}

func newListResponse(page query.Page, links []query.PageLink) ListResponse {
	if links == nil {
		links = []query.PageLink{}
	}
	return ListResponse{Page: page, Links: links}
}

// ItemDetail is an item with its display fields and the items shown beside it
type ItemDetail struct {
	Item        models.Item   `json:"item"`
	DisplayName string        `json:"display_name"`
	Slug        string        `json:"slug"`
	Change      models.Change `json:"change"`
	Similar     []models.Item `json:"similar"`
}

type CatalogHandler struct {
	catalog  *catalog.Catalog
	charts   *services.ChartService
	pageSize int
}

func NewCatalogHandler(c *catalog.Catalog, charts *services.ChartService, pageSize int) *CatalogHandler {
	if pageSize <= 0 {
		pageSize = query.DefaultPageSize
	}
	return &CatalogHandler{catalog: c, charts: charts, pageSize: pageSize}
}

// ListItems runs the filter pipeline over the catalog and returns one page
// GET /api/v1/items?q=&type=&status=&sort=&from=&to=&tab=&page=
func (h *CatalogHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	cfg := FilterFromQuery(params)
	tab := params.Get("tab")

	page, _ := strconv.Atoi(params.Get("page"))
	if page <= 0 {
		page = 1
	}

	results := query.Query(h.catalog.Items(), cfg, tab)
	p := query.Paginate(results, page, h.pageSize)

	writeJSON(w, http.StatusOK, newListResponse(p, query.PageLinks(p.Number, p.TotalPages)))
}

// GetItem returns an item with its similar items
// GET /api/v1/items/{id} or /api/v1/items/{name}/{id}
func (h *CatalogHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, ItemDetail{
		Item:        item,
		DisplayName: item.DisplayName(),
		Slug:        item.Slug(),
		Change:      models.ChangeDirection(item.RecentChanges),
		Similar:     h.catalog.Similar(item, catalog.DefaultSimilarLimit),
	})
}

// GetHistory returns the value history series of an item
// GET /api/v1/items/{id}/history
func (h *CatalogHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.charts.ValueHistory(item))
}

// GetChart renders the value history of an item as a PNG
// GET /api/v1/items/{id}/chart.png
func (h *CatalogHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	item, ok := h.lookup(w, r)
	if !ok {
		return
	}

	img, err := h.charts.GenerateValueChartPNG(item)
	if err != nil {
		log.Error().Err(err).Int64("item_id", item.ID).Msg("Failed to render chart")
		http.Error(w, "Failed to render chart", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Write(img)
}

// ListCategories returns the category tabs
// GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.catalog.Tabs())
}

// lookup resolves the item named by the route. The {name} segment of the
// /items/{name}/{id} form is not checked against the item.
func (h *CatalogHandler) lookup(w http.ResponseWriter, r *http.Request) (models.Item, bool) {
	raw := chi.URLParam(r, "itemID")
	if raw == "" {
		raw = chi.URLParam(r, "id")
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		http.Error(w, "Invalid item ID", http.StatusBadRequest)
		return models.Item{}, false
	}

	item, ok := h.catalog.FindByID(id)
	if !ok {
		http.Error(w, "Item not found", http.StatusNotFound)
		return models.Item{}, false
	}
	return item, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
