package models

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/guregu/null.v3"
)

// Trend is an item's price-movement classification
type Trend string

const (
	TrendStable      Trend = "stable"
	TrendFluctuating Trend = "fluctuating"
	TrendRising      Trend = "rising"
	TrendDropping    Trend = "dropping"
)

// Trends lists every trend in filter-control order
var Trends = []Trend{TrendStable, TrendFluctuating, TrendRising, TrendDropping}

// Item types offered by the Type filter
const (
	TypeNormal = "normal"
	TypeST     = "st"
)

// ItemTypes lists every item type in filter-control order
var ItemTypes = []string{TypeNormal, TypeST}

// Item is a single catalog entry. Items are never mutated once the catalog is loaded.
// The *Num fields carry the numeric form of their display counterparts and may be null.
type Item struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Type          string     `json:"type"`
	Category      string     `json:"category"`
	Trend         Trend      `json:"trend"`
	Status        string     `json:"status"`
	BaseValue     string     `json:"baseValue"`
	BaseValueNum  null.Float `json:"baseValueNum"`
	Rares         string     `json:"rares"`
	RaresNum      null.Float `json:"raresNum"`
	Mids          string     `json:"mids"`
	MidsNum       null.Float `json:"midsNum"`
	ImageURL      string     `json:"imageUrl"`
	Case          string     `json:"case"`
	RecentChanges string     `json:"recentChanges,omitempty"`
	LastUpdated   string     `json:"lastUpdated,omitempty"`
}

// DisplayName returns the item's name formatted for display
func (i Item) DisplayName() string {
	return DisplayName(i.Name)
}

// Slug returns the routing slug for the item
func (i Item) Slug() string {
	return NameSlug(i.Name)
}

// DisplayName capitalizes the first letter of every whitespace-separated word.
// Single-word and empty names are returned unchanged.
func DisplayName(name string) string {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return name
	}

	for i, word := range parts {
		r, size := utf8.DecodeRuneInString(word)
		if r == utf8.RuneError && size == 1 {
			continue
		}
		parts[i] = string(unicode.ToUpper(r)) + word[size:]
	}
	return strings.Join(parts, " ")
}

// NameSlug replaces every run of whitespace in name with a single hyphen
func NameSlug(name string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range name {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('-')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// Change is the direction of an item's recent value change
type Change string

const (
	ChangeNeutral Change = "neutral"
	ChangeUp      Change = "up"
	ChangeDown    Change = "down"
)

// ChangeDirection classifies a recentChanges display string.
// Empty and "N/A" are neutral, a leading minus sign is down, anything else is up.
func ChangeDirection(recentChanges string) Change {
	if recentChanges == "" || recentChanges == "N/A" {
		return ChangeNeutral
	}
	if strings.HasPrefix(recentChanges, "-") {
		return ChangeDown
	}
	return ChangeUp
}
