package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/akagifreeez/trade-values/internal/basket"
	"github.com/akagifreeez/trade-values/internal/services"
)

const wsIdleTimeout = 5 * time.Minute

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// BasketMessage is a calculator command sent over the session socket
type BasketMessage struct {
	Action string `json:"action"` // add, remove or summary
	Side   string `json:"side,omitempty"`
	ItemID int64  `json:"item_id,omitempty"`
	Key    int64  `json:"key,omitempty"`
}

// BasketFrame answers one BasketMessage
type BasketFrame struct {
	Action  string          `json:"action"`
	Key     int64           `json:"key,omitempty"`
	Removed *bool           `json:"removed,omitempty"`
	Baskets *basket.Summary `json:"baskets,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ServeBaskets drives a session's baskets over a websocket
// GET /api/v1/sessions/{sid}/ws
func (h *SessionHandler) ServeBaskets(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	if _, err := h.sessions.Baskets(sid); err != nil {
		writeServiceError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("session", sid).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	log.Debug().Str("session", sid).Msg("WebSocket connected")

	for {
		conn.SetReadDeadline(time.Now().Add(wsIdleTimeout))

		var msg BasketMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("session", sid).Msg("WebSocket read error")
			}
			return
		}

		frame, err := h.handleBasketMessage(sid, msg)
		if werr := conn.WriteJSON(frame); werr != nil {
			log.Warn().Err(werr).Str("session", sid).Msg("WebSocket write error")
			return
		}

		// The session was discarded or swept while the socket was open
		if errors.Is(err, services.ErrSessionNotFound) {
			return
		}
	}
}

func (h *SessionHandler) handleBasketMessage(sid string, msg BasketMessage) (BasketFrame, error) {
	frame := BasketFrame{Action: msg.Action}

	var summary basket.Summary
	var err error

	switch msg.Action {
	case "summary":
		summary, err = h.sessions.Baskets(sid)

	case "add":
		var side basket.Side
		if side, err = basket.ParseSide(msg.Side); err == nil {
			frame.Key, summary, err = h.sessions.AddItem(sid, side, msg.ItemID)
		}

	case "remove":
		var side basket.Side
		if side, err = basket.ParseSide(msg.Side); err == nil {
			var removed bool
			removed, summary, err = h.sessions.RemoveItem(sid, side, msg.Key)
			frame.Removed = &removed
		}

	default:
		frame.Error = "unknown action"
		return frame, nil
	}

	if err != nil {
		frame.Error = err.Error()
		return frame, err
	}
	frame.Baskets = &summary
	return frame, nil
}
