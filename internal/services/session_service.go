package services

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/akagifreeez/trade-values/internal/basket"
	"github.com/akagifreeez/trade-values/internal/catalog"
	"github.com/akagifreeez/trade-values/internal/models"
	"github.com/akagifreeez/trade-values/internal/query"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrItemNotFound    = errors.New("item not found")
)

// Session is one visitor's browsing state: the list page, the calculator
// picker and the two trade baskets. Nothing in it outlives the session.
type Session struct {
	ID        string
	CreatedAt time.Time

	List       *query.ListView
	Calculator *query.CalculatorView
	Trade      *basket.Trade

	mu       sync.Mutex
	lastUsed time.Time
}

// Snapshot is the serializable state of a session
type Snapshot struct {
	ID               string              `json:"id"`
	CreatedAt        time.Time           `json:"created_at"`
	ListFilter       models.FilterConfig `json:"list_filter"`
	Tab              string              `json:"tab"`
	Page             query.Page          `json:"page"`
	Links            []query.PageLink    `json:"links"`
	CalculatorFilter models.FilterConfig `json:"calculator_filter"`
	CalculatorItems  []models.Item       `json:"calculator_items"`
	Baskets          basket.Summary      `json:"baskets"`
}

// Snapshot must be called with the session held, i.e. inside SessionService.Do
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:               s.ID,
		CreatedAt:        s.CreatedAt,
		ListFilter:       s.List.Filter(),
		Tab:              s.List.Tab(),
		Page:             s.List.Current(),
		Links:            s.List.Links(),
		CalculatorFilter: s.Calculator.Filter(),
		CalculatorItems:  s.Calculator.Results(),
		Baskets:          s.Trade.Summary(),
	}
}

// SessionService keeps sessions in memory and serializes access to each one
type SessionService struct {
	catalog  *catalog.Catalog
	pageSize int
	ttl      time.Duration

	sessions map[string]*Session
	mu       sync.RWMutex

	now func() time.Time
}

// NewSessionService creates a session store over catalog. Sessions idle for
// longer than ttl are removed by Sweep.
func NewSessionService(c *catalog.Catalog, pageSize int, ttl time.Duration) *SessionService {
	return &SessionService{
		catalog:  c,
		pageSize: pageSize,
		ttl:      ttl,
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create starts a new session with default views and empty baskets
func (s *SessionService) Create() *Session {
	now := s.now()
	sess := &Session{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		List:       query.NewListView(s.catalog.Items(), s.pageSize),
		Calculator: query.NewCalculatorView(s.catalog.Items()),
		Trade:      basket.NewTrade(),
		lastUsed:   now,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	log.Debug().Str("session", sess.ID).Msg("Session created")
	return sess
}

// Do runs fn with exclusive access to the session
func (s *SessionService) Do(id string, fn func(*Session) error) error {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastUsed = s.now()
	return fn(sess)
}

// Delete discards a session
func (s *SessionService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions
func (s *SessionService) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many it removed
func (s *SessionService) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastUsed.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Snapshot returns the current state of a session
func (s *SessionService) Snapshot(id string) (Snapshot, error) {
	var snap Snapshot
	err := s.Do(id, func(sess *Session) error {
		snap = sess.Snapshot()
		return nil
	})
	return snap, err
}

// AddItem puts the catalog item itemID into one basket of the session
func (s *SessionService) AddItem(id string, side basket.Side, itemID int64) (int64, basket.Summary, error) {
	item, ok := s.catalog.FindByID(itemID)
	if !ok {
		return 0, basket.Summary{}, ErrItemNotFound
	}

	var key int64
	var summary basket.Summary
	err := s.Do(id, func(sess *Session) error {
		k, err := sess.Trade.Add(side, item)
		if err != nil {
			return err
		}
		key = k
		summary = sess.Trade.Summary()
		return nil
	})
	return key, summary, err
}

// RemoveItem takes the entry with key out of one basket of the session.
// Removing a key that is not in the basket is a no-op reported as false.
func (s *SessionService) RemoveItem(id string, side basket.Side, key int64) (bool, basket.Summary, error) {
	var removed bool
	var summary basket.Summary
	err := s.Do(id, func(sess *Session) error {
		r, err := sess.Trade.Remove(side, key)
		if err != nil {
			return err
		}
		removed = r
		summary = sess.Trade.Summary()
		return nil
	})
	return removed, summary, err
}

// Baskets returns the trade summary of a session
func (s *SessionService) Baskets(id string) (basket.Summary, error) {
	var summary basket.Summary
	err := s.Do(id, func(sess *Session) error {
		summary = sess.Trade.Summary()
		return nil
	})
	return summary, err
}
