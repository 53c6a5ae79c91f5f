package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/akagifreeez/trade-values/internal/basket"
	"github.com/akagifreeez/trade-values/internal/models"
	"github.com/akagifreeez/trade-values/internal/services"
)

type SessionHandler struct {
	sessions *services.SessionService
}

func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// CreateSession starts a new browsing session
// POST /api/v1/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	sess := h.sessions.Create()
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id": sess.ID,
	})
}

// GetSession returns the full state of a session
// GET /api/v1/sessions/{sid}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.sessions.Snapshot(chi.URLParam(r, "sid"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// DeleteSession discards a session and its baskets
// DELETE /api/v1/sessions/{sid}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(chi.URLParam(r, "sid")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateListFilter applies a filter to the session's list and returns page 1
// PUT /api/v1/sessions/{sid}/list/filter
func (h *SessionHandler) UpdateListFilter(w http.ResponseWriter, r *http.Request) {
	var cfg models.FilterConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cfg.SortBy = sortKeyOrDefault(cfg.SortBy)

	var resp ListResponse
	err := h.sessions.Do(chi.URLParam(r, "sid"), func(sess *services.Session) error {
		resp = newListResponse(sess.List.ApplyFilter(cfg), sess.List.Links())
		return nil
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// SelectTab switches the category tab of the session's list and returns page 1
// PUT /api/v1/sessions/{sid}/list/tab
func (h *SessionHandler) SelectTab(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tab string `json:"tab"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var resp ListResponse
	err := h.sessions.Do(chi.URLParam(r, "sid"), func(sess *services.Session) error {
		resp = newListResponse(sess.List.SelectTab(req.Tab), sess.List.Links())
		return nil
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ChangePage moves the session's list to another page.
// The body names either a page number or a direction ("next" or "prev").
// PUT /api/v1/sessions/{sid}/list/page
func (h *SessionHandler) ChangePage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Page      int    `json:"page"`
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Direction != "" && req.Direction != "next" && req.Direction != "prev" {
		http.Error(w, "Invalid direction", http.StatusBadRequest)
		return
	}

	var resp ListResponse
	err := h.sessions.Do(chi.URLParam(r, "sid"), func(sess *services.Session) error {
		switch req.Direction {
		case "next":
			sess.List.Next()
		case "prev":
			sess.List.Prev()
		default:
			sess.List.GoTo(req.Page)
		}
		resp = newListResponse(sess.List.Current(), sess.List.Links())
		return nil
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// UpdateCalculatorFilter filters the calculator's item picker
// PUT /api/v1/sessions/{sid}/calculator/filter
func (h *SessionHandler) UpdateCalculatorFilter(w http.ResponseWriter, r *http.Request) {
	var cfg models.FilterConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cfg.SortBy = sortKeyOrDefault(cfg.SortBy)

	var items []models.Item
	err := h.sessions.Do(chi.URLParam(r, "sid"), func(sess *services.Session) error {
		items = sess.Calculator.ApplyFilter(cfg)
		return nil
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []models.Item{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": items,
	})
}

// AddToBasket places a catalog item into the offer or request basket
// POST /api/v1/sessions/{sid}/baskets/{side}
func (h *SessionHandler) AddToBasket(w http.ResponseWriter, r *http.Request) {
	side, err := basket.ParseSide(chi.URLParam(r, "side"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var req struct {
		ItemID int64 `json:"item_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	key, summary, err := h.sessions.AddItem(chi.URLParam(r, "sid"), side, req.ItemID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"key":     key,
		"baskets": summary,
	})
}

// RemoveFromBasket takes an entry out of a basket. A missing key leaves the
// basket unchanged and answers 404.
// DELETE /api/v1/sessions/{sid}/baskets/{side}/{key}
func (h *SessionHandler) RemoveFromBasket(w http.ResponseWriter, r *http.Request) {
	side, err := basket.ParseSide(chi.URLParam(r, "side"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	key, err := strconv.ParseInt(chi.URLParam(r, "key"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid entry key", http.StatusBadRequest)
		return
	}

	removed, summary, err := h.sessions.RemoveItem(chi.URLParam(r, "sid"), side, key)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	status := http.StatusOK
	if !removed {
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]interface{}{
		"removed": removed,
		"baskets": summary,
	})
}

// GetBaskets returns both baskets with their slots and totals
// GET /api/v1/sessions/{sid}/baskets
func (h *SessionHandler) GetBaskets(w http.ResponseWriter, r *http.Request) {
	summary, err := h.sessions.Baskets(chi.URLParam(r, "sid"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrSessionNotFound):
		http.Error(w, "Session not found", http.StatusNotFound)
	case errors.Is(err, services.ErrItemNotFound):
		http.Error(w, "Item not found", http.StatusNotFound)
	case errors.Is(err, basket.ErrUnknownSide):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		log.Error().Err(err).Msg("Session request failed")
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}
