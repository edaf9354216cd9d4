package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params are the page and limit a client asked for.
type Params struct {
	Page  int // 1-based
	Limit int
}

// ParseQueryParams reads page and limit from the query string. Missing
// parameters take the configured defaults; present but invalid ones are an
// error so a typo never silently returns page 1.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{
		Page:  config.DefaultPage,
		Limit: config.DefaultLimit,
	}

	query := r.URL.Query()

	if raw := query.Get("page"); raw != "" {
		page, ok := parseBoundedInt(raw, 1, 0)
		if !ok {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	if raw := query.Get("limit"); raw != "" {
		limit, ok := parseBoundedInt(raw, 1, config.MaxLimit)
		if !ok {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}

	return params, nil
}

// parseBoundedInt parses raw as an integer in [min, max]. A max of zero
// means unbounded above.
func parseBoundedInt(raw string, min, max int) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < min {
		return 0, false
	}
	if max > 0 && n > max {
		return 0, false
	}
	return n, true
}
