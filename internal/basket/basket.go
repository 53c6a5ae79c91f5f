package basket

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/akagifreeez/trade-values/internal/models"
)

// VisibleSlots is how many entries a basket view shows
const VisibleSlots = 4

var ErrUnknownSide = errors.New("unknown basket side")

// Entry is one item placed in a basket. Key addresses the entry for removal.
type Entry struct {
	Key  int64       `json:"key"`
	Item models.Item `json:"item"`
}

// Totals are the summed numeric fields of a basket's entries
type Totals struct {
	Value float64 `json:"value"`
	Rares float64 `json:"rares"`
	Mids  float64 `json:"mids"`
}

// Add returns the field-wise sum of t and o
func (t Totals) Add(o Totals) Totals {
	return Totals{Value: t.Value + o.Value, Rares: t.Rares + o.Rares, Mids: t.Mids + o.Mids}
}

// Formatted renders every total with FormatMagnitude
func (t Totals) Formatted() FormattedTotals {
	return FormattedTotals{
		Value: FormatMagnitude(t.Value),
		Rares: FormatMagnitude(t.Rares),
		Mids:  FormatMagnitude(t.Mids),
	}
}

// FormattedTotals is the display form of Totals
type FormattedTotals struct {
	Value string `json:"value"`
	Rares string `json:"rares"`
	Mids  string `json:"mids"`
}

// Basket is an ordered list of entries. The same item may be added any number
// of times; each addition is a separate entry with its own key.
// A Basket is not safe for concurrent use.
type Basket struct {
	entries []Entry
	nextKey int64
}

// New returns an empty basket
func New() *Basket {
	return &Basket{}
}

// Add appends item and returns the entry's key. Keys only ever increase.
func (b *Basket) Add(item models.Item) int64 {
	b.nextKey++
	b.entries = append(b.entries, Entry{Key: b.nextKey, Item: item})
	return b.nextKey
}

// Remove deletes the entry with key and reports whether it existed
func (b *Basket) Remove(key int64) bool {
	for i, e := range b.entries {
		if e.Key == key {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of entries, including those beyond the visible slots
func (b *Basket) Len() int {
	return len(b.entries)
}

// Entries returns a copy of the entries in insertion order
func (b *Basket) Entries() []Entry {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Slots returns the VisibleSlots display slots. Empty slots are nil.
// Entries past the last slot are kept and counted but not shown.
func (b *Basket) Slots() []*Entry {
	slots := make([]*Entry, VisibleSlots)
	for i := 0; i < VisibleSlots && i < len(b.entries); i++ {
		e := b.entries[i]
		slots[i] = &e
	}
	return slots
}

// Totals sums the numeric fields of every entry; null fields count as zero
func (b *Basket) Totals() Totals {
	var t Totals
	for _, e := range b.entries {
		t.Value += e.Item.BaseValueNum.ValueOrZero()
		t.Rares += e.Item.RaresNum.ValueOrZero()
		t.Mids += e.Item.MidsNum.ValueOrZero()
	}
	return t
}

// FormatMagnitude abbreviates v with a k or M suffix and one decimal place.
// Values under a thousand are printed as they are.
func FormatMagnitude(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.1fk", v/1_000)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
