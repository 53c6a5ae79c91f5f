package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/akagifreeez/trade-values/internal/models"
	"github.com/akagifreeez/trade-values/internal/services"
	"github.com/akagifreeez/trade-values/pkg/ratelimit"
)

func TestFilterFromQuery_sortKeys(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		sort string
		want models.SortKey
	}{
		"absent":     {sort: "", want: models.SortByCategory},
		"registered": {sort: "valueHighToLow", want: models.SortValueHighToLow},
		"unknown":    {sort: "byPrice", want: models.SortByCategory},
	}

	for name, tc := range cases {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			params := url.Values{}
			if tc.sort != "" {
				params.Set("sort", tc.sort)
			}
			if got := FilterFromQuery(params).SortBy; got != tc.want {
				t.Errorf("SortBy = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUpdateListFilter_unknownSortStoresCatalogOrder(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t, ratelimit.NewLocalLimiter(0))
	sid := decode[map[string]string](t, do(t, router, http.MethodPost, "/api/v1/sessions", nil))["id"]
	base := "/api/v1/sessions/" + sid

	cfg := models.DefaultFilter()
	cfg.SortBy = "byPrice"
	rec := do(t, router, http.MethodPut, base+"/list/filter", cfg)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := itemIDs(decode[ListResponse](t, rec).Items); !equalIDs(got, []int64{1, 2}) {
		t.Errorf("ids = %v, want [1 2]", got)
	}

	snap := decode[services.Snapshot](t, do(t, router, http.MethodGet, base, nil))
	if snap.ListFilter.SortBy != models.SortByCategory {
		t.Errorf("stored sort = %q, want %q", snap.ListFilter.SortBy, models.SortByCategory)
	}
}
