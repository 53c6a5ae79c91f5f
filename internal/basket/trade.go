package basket

import (
	"fmt"

	"github.com/akagifreeez/trade-values/internal/models"
)

// Side names one of the two baskets of a trade
type Side string

const (
	SideOffer   Side = "offer"
	SideRequest Side = "request"
)

// ParseSide validates a side name
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideOffer, SideRequest:
		return Side(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSide, s)
}

// Trade is the pair of baskets of the calculator: what is offered and what is requested
type Trade struct {
	Offer   *Basket
	Request *Basket
}

// NewTrade returns a trade with two empty baskets
func NewTrade() *Trade {
	return &Trade{Offer: New(), Request: New()}
}

// Basket returns the basket for side
func (t *Trade) Basket(side Side) (*Basket, error) {
	switch side {
	case SideOffer:
		return t.Offer, nil
	case SideRequest:
		return t.Request, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSide, side)
}

// Add places item in the side's basket and returns its key
func (t *Trade) Add(side Side, item models.Item) (int64, error) {
	b, err := t.Basket(side)
	if err != nil {
		return 0, err
	}
	return b.Add(item), nil
}

// Remove deletes an entry from the side's basket and reports whether it existed
func (t *Trade) Remove(side Side, key int64) (bool, error) {
	b, err := t.Basket(side)
	if err != nil {
		return false, err
	}
	return b.Remove(key), nil
}

// BasketSummary is the display state of one basket
type BasketSummary struct {
	Slots     []*Entry        `json:"slots"`
	Count     int             `json:"count"`
	Totals    Totals          `json:"totals"`
	Formatted FormattedTotals `json:"formatted"`
}

// Summary is the display state of both baskets
type Summary struct {
	Offer   BasketSummary `json:"offer"`
	Request BasketSummary `json:"request"`
}

// Summary computes the current totals and slots of both baskets
func (t *Trade) Summary() Summary {
	return Summary{
		Offer:   summarize(t.Offer),
		Request: summarize(t.Request),
	}
}

func summarize(b *Basket) BasketSummary {
	totals := b.Totals()
	return BasketSummary{
		Slots:     b.Slots(),
		Count:     b.Len(),
		Totals:    totals,
		Formatted: totals.Formatted(),
	}
}
