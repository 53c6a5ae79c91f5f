package handlers

import (
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/akagifreeez/trade-values/internal/models"
	"github.com/akagifreeez/trade-values/internal/query"
)

// FilterFromQuery builds a filter configuration from list query parameters.
// Absent type or status parameters leave every option checked.
func FilterFromQuery(params url.Values) models.FilterConfig {
	cfg := models.DefaultFilter()
	cfg.Search = params.Get("q")
	cfg.ValueRange = models.ValueRange{From: params.Get("from"), To: params.Get("to")}

	if sort := params.Get("sort"); sort != "" {
		cfg.SortBy = models.SortKey(sort)
	}
	cfg.SortBy = sortKeyOrDefault(cfg.SortBy)

	if types, ok := params["type"]; ok {
		cfg.Type = make(map[string]bool, len(types))
		for _, t := range types {
			cfg.Type[t] = true
		}
	}

	if statuses, ok := params["status"]; ok {
		cfg.Status = make(map[models.Trend]bool, len(statuses))
		for _, s := range statuses {
			cfg.Status[models.Trend(s)] = true
		}
	}

	return cfg
}

// sortKeyOrDefault replaces an unregistered sort key with catalog order
func sortKeyOrDefault(key models.SortKey) models.SortKey {
	if query.IsSortKey(key) {
		return key
	}
	if key != "" {
		log.Debug().Str("sort", string(key)).Msg("Unknown sort key, using catalog order")
	}
	return models.SortByCategory
}
