package query

import (
	"math"
	"strconv"
	"strings"

	"github.com/akagifreeez/trade-values/internal/models"
)

// Predicate reports whether an item passes a filter
type Predicate func(models.Item) bool

// And combines predicates; an empty list accepts every item
func And(preds ...Predicate) Predicate {
	return func(item models.Item) bool {
		for _, p := range preds {
			if !p(item) {
				return false
			}
		}
		return true
	}
}

// BuildPredicate turns a filter configuration into a predicate over items.
// Each clause is vacuously true when its part of cfg does not restrict anything.
// cfg is copied, so later changes to its maps do not affect the predicate.
func BuildPredicate(cfg models.FilterConfig) Predicate {
	var preds []Predicate

	if cfg.Search != "" {
		term := strings.ToLower(cfg.Search)
		preds = append(preds, func(item models.Item) bool {
			return strings.Contains(strings.ToLower(item.Name), term)
		})
	}

	// No checked type (or trend) means no restriction at all.
	if types := activeKeys(cfg.Type); len(types) > 0 {
		preds = append(preds, func(item models.Item) bool {
			_, ok := types[item.Type]
			return ok
		})
	}

	if trends := activeKeys(cfg.Status); len(trends) > 0 {
		preds = append(preds, func(item models.Item) bool {
			_, ok := trends[item.Trend]
			return ok
		})
	}

	if from, ok := ParseBound(cfg.ValueRange.From); ok {
		preds = append(preds, func(item models.Item) bool {
			return item.BaseValueNum.Valid && item.BaseValueNum.Float64 >= from
		})
	}

	if to, ok := ParseBound(cfg.ValueRange.To); ok {
		preds = append(preds, func(item models.Item) bool {
			return item.BaseValueNum.Valid && item.BaseValueNum.Float64 <= to
		})
	}

	return And(preds...)
}

func activeKeys[K comparable](m map[K]bool) map[K]struct{} {
	active := make(map[K]struct{}, len(m))
	for k, on := range m {
		if on {
			active[k] = struct{}{}
		}
	}
	return active
}

// ParseBound parses value range input text. Leading whitespace and a sign are
// accepted, then the leading run of digits is used and anything after it ignored,
// so "10k" is 10 and "1.5" is 1. Text without leading digits is not a bound.
func ParseBound(text string) (float64, bool) {
	s := strings.TrimLeft(text, " \t\n\r\v\f")
	if s == "" {
		return 0, false
	}

	end := 0
	if s[0] == '+' || s[0] == '-' {
		end = 1
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
