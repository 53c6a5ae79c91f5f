package query

import (
	"fmt"
	"reflect"
	"testing"

	"gopkg.in/guregu/null.v3"

	"github.com/akagifreeez/trade-values/internal/models"
)

func item(id int64, name, typ, category string, trend models.Trend, value *float64) models.Item {
	it := models.Item{
		ID:       id,
		Name:     name,
		Type:     typ,
		Category: category,
		Trend:    trend,
	}
	if value != nil {
		it.BaseValueNum = null.FloatFrom(*value)
	}
	return it
}

func v(f float64) *float64 { return &f }

func ids(items []models.Item) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func sampleCatalog() []models.Item {
	return []models.Item{
		item(3, "ak47 dragon", models.TypeNormal, "rifles", models.TrendStable, v(500)),
		item(1, "glock fade", models.TypeST, "pistols", models.TrendRising, v(1500)),
		item(7, "karambit lore", models.TypeNormal, "knives", models.TrendDropping, nil),
		item(2, "ak47 redline", models.TypeST, "rifles", models.TrendFluctuating, v(500)),
		item(5, "usp kill", models.TypeNormal, "pistols", models.TrendStable, v(20)),
		item(4, "m4 howl", models.TypeNormal, "rifles", models.TrendRising, nil),
	}
}

func TestQuery_neutralFilterIsIdentity(t *testing.T) {
	t.Parallel()

	catalog := sampleCatalog()
	want := ids(catalog)

	configs := map[string]models.FilterConfig{
		"default":    models.DefaultFilter(),
		"zero value": {},
		"all off": {
			Type:   map[string]bool{models.TypeNormal: false, models.TypeST: false},
			Status: map[models.Trend]bool{models.TrendStable: false},
		},
	}

	for name, cfg := range configs {
		got := ids(Query(catalog, cfg, models.TabAll))
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: got %v, want %v", name, got, want)
		}
	}
}

func TestQuery_doesNotMutateCatalog(t *testing.T) {
	t.Parallel()

	catalog := sampleCatalog()
	before := ids(catalog)

	cfg := models.DefaultFilter()
	cfg.SortBy = models.SortNewest
	_ = Query(catalog, cfg, models.TabAll)

	if got := ids(catalog); !reflect.DeepEqual(got, before) {
		t.Fatalf("catalog reordered: got %v, want %v", got, before)
	}
}

func TestBuildPredicate(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		mutate func(*models.FilterConfig)
		tab    string
		want   []int64
	}{
		"search is case-insensitive substring": {
			mutate: func(c *models.FilterConfig) { c.Search = "AK47" },
			want:   []int64{3, 2},
		},
		"type restricts to checked types": {
			mutate: func(c *models.FilterConfig) { c.Type[models.TypeNormal] = false },
			want:   []int64{1, 2},
		},
		"status restricts to checked trends": {
			mutate: func(c *models.FilterConfig) {
				c.Status = map[models.Trend]bool{models.TrendStable: true}
			},
			want: []int64{3, 5},
		},
		"lower bound excludes null values": {
			mutate: func(c *models.FilterConfig) { c.ValueRange.From = "100" },
			want:   []int64{3, 1, 2},
		},
		"upper bound excludes null values": {
			mutate: func(c *models.FilterConfig) { c.ValueRange.To = "500" },
			want:   []int64{3, 2, 5},
		},
		"both bounds inclusive": {
			mutate: func(c *models.FilterConfig) { c.ValueRange = models.ValueRange{From: "500", To: "1500"} },
			want:   []int64{3, 1, 2},
		},
		"non-numeric bounds are inert": {
			mutate: func(c *models.FilterConfig) { c.ValueRange = models.ValueRange{From: "abc", To: " "} },
			want:   []int64{3, 1, 7, 2, 5, 4},
		},
		"tab composes with filter": {
			mutate: func(c *models.FilterConfig) { c.Search = "a" },
			tab:    "rifles",
			want:   []int64{3, 2},
		},
		"empty result is valid": {
			mutate: func(c *models.FilterConfig) { c.Search = "nothing matches" },
			want:   []int64{},
		},
	}

	for name, tt := range cases {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cfg := models.DefaultFilter()
			tt.mutate(&cfg)
			tab := tt.tab
			if tab == "" {
				tab = models.TabAll
			}
			got := ids(Query(sampleCatalog(), cfg, tab))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuery_nullValueExcludedByFromRegardlessOfTo(t *testing.T) {
	t.Parallel()

	catalog := []models.Item{item(1, "no value", models.TypeNormal, "misc", models.TrendStable, nil)}
	for _, to := range []string{"", "5", "1000000", "junk"} {
		cfg := models.DefaultFilter()
		cfg.ValueRange = models.ValueRange{From: "10", To: to}
		if got := Query(catalog, cfg, models.TabAll); len(got) != 0 {
			t.Errorf("to=%q: null-valued item should be excluded, got %v", to, ids(got))
		}
	}
}

func TestParseBound(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"10", 10, true},
		{"  42", 42, true},
		{"-3", -3, true},
		{"+7", 7, true},
		{"10k", 10, true},
		{"1.5", 1, true},
		{"0", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{"-", 0, false},
		{".5", 0, false},
	}
	for _, tt := range cases {
		got, ok := ParseBound(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseBound(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSort(t *testing.T) {
	t.Parallel()

	cases := map[models.SortKey][]int64{
		models.SortByCategory:     {3, 1, 7, 2, 5, 4},
		models.SortNewest:         {7, 5, 4, 3, 2, 1},
		models.SortOldest:         {1, 2, 3, 4, 5, 7},
		models.SortValueLowToHigh: {5, 3, 2, 1, 7, 4},
		models.SortValueHighToLow: {1, 3, 2, 5, 7, 4},
		models.SortKey("bogus"):   {3, 1, 7, 2, 5, 4},
	}

	for key, want := range cases {
		cfg := models.DefaultFilter()
		cfg.SortBy = key
		got := ids(Query(sampleCatalog(), cfg, models.TabAll))
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: got %v, want %v", key, got, want)
		}
	}
}

func TestSort_nullValuesLastInBothDirections(t *testing.T) {
	t.Parallel()

	var catalog []models.Item
	for i := int64(1); i <= 30; i++ {
		var val *float64
		if i%3 == 0 {
			val = v(float64(i * 10))
		}
		catalog = append(catalog, item(i, fmt.Sprintf("item %d", i), models.TypeNormal, "misc", models.TrendStable, val))
	}

	for _, key := range []models.SortKey{models.SortValueLowToHigh, models.SortValueHighToLow} {
		cfg := models.DefaultFilter()
		cfg.SortBy = key
		got := Query(catalog, cfg, models.TabAll)

		seenNull := false
		for _, it := range got {
			if !it.BaseValueNum.Valid {
				seenNull = true
				continue
			}
			if seenNull {
				t.Fatalf("%s: valued item %d sorted after a null-valued item", key, it.ID)
			}
		}
	}
}

func TestSort_isStable(t *testing.T) {
	t.Parallel()

	// Items 10..14 share a value, 20..22 have none; ties must keep input order.
	catalog := []models.Item{
		item(10, "a", models.TypeNormal, "misc", models.TrendStable, v(100)),
		item(20, "b", models.TypeNormal, "misc", models.TrendStable, nil),
		item(11, "c", models.TypeNormal, "misc", models.TrendStable, v(100)),
		item(30, "d", models.TypeNormal, "misc", models.TrendStable, v(50)),
		item(21, "e", models.TypeNormal, "misc", models.TrendStable, nil),
		item(12, "f", models.TypeNormal, "misc", models.TrendStable, v(100)),
		item(22, "g", models.TypeNormal, "misc", models.TrendStable, nil),
	}

	cases := map[models.SortKey][]int64{
		models.SortValueLowToHigh: {30, 10, 11, 12, 20, 21, 22},
		models.SortValueHighToLow: {10, 11, 12, 30, 20, 21, 22},
	}
	for key, want := range cases {
		cfg := models.DefaultFilter()
		cfg.SortBy = key
		got := ids(Query(catalog, cfg, models.TabAll))
		if !reflect.DeepEqual(got, want) {
			t.Errorf("%s: got %v, want %v", key, got, want)
		}
	}
}

func TestComparatorFor_nullRules(t *testing.T) {
	t.Parallel()

	valued := item(1, "a", models.TypeNormal, "misc", models.TrendStable, v(-5))
	empty := item(2, "b", models.TypeNormal, "misc", models.TrendStable, nil)

	for _, key := range []models.SortKey{models.SortValueLowToHigh, models.SortValueHighToLow} {
		c := ComparatorFor(key)
		if got := c(empty, valued); got != 1 {
			t.Errorf("%s: null vs value = %d, want 1", key, got)
		}
		if got := c(valued, empty); got != -1 {
			t.Errorf("%s: value vs null = %d, want -1", key, got)
		}
		if got := c(empty, empty); got != 0 {
			t.Errorf("%s: null vs null = %d, want 0", key, got)
		}
	}
}

func TestQueryTab(t *testing.T) {
	t.Parallel()

	got := ids(QueryTab(sampleCatalog(), "pistols"))
	if want := []int64{1, 5}; !reflect.DeepEqual(got, want) {
		t.Errorf("pistols: got %v, want %v", got, want)
	}
	if got := QueryTab(sampleCatalog(), models.TabAll); len(got) != 6 {
		t.Errorf("all: got %d items, want 6", len(got))
	}
}
