package types

import (
	"net/url"
	"strconv"
	"strings"
)

// Pagination defaults and bounds for the list endpoint.
const (
	DefaultPerPage = 12
	MinPerPage     = 1
	MaxPerPage     = 100

	DefaultSortBy    = "created_at"
	DefaultSortOrder = "desc"
)

// sortable columns for the list endpoint. total_time is derived and handled
// as an expression at query time, not as a column reference.
var allowedSortFields = map[string]bool{
	"created_at": true,
	"title":      true,
	"prep_time":  true,
	"cook_time":  true,
	"total_time": true,
	"servings":   true,
	"difficulty": true,
	"category":   true,
}

// ListQuery is the full, normalized parameter set for listing recipes. A zero
// value of an optional field means the filter is absent. Values taken from a
// query string are already coerced, clamped and defaulted by ParseListQuery,
// so executing a ListQuery never fails on bad input.
type ListQuery struct {
	Search     string
	Category   string
	Difficulty string

	MinPrepTime  *int
	MaxPrepTime  *int
	MinTotalTime *int
	MaxTotalTime *int
	MinServings  *int
	MaxServings  *int

	SortBy    string
	SortOrder string
	Page      int
	PerPage   int
}

// DefaultListQuery returns the query used when no parameters are supplied.
func DefaultListQuery() ListQuery {
	return ListQuery{
		SortBy:    DefaultSortBy,
		SortOrder: DefaultSortOrder,
		Page:      1,
		PerPage:   DefaultPerPage,
	}
}

// ParseListQuery builds a normalized ListQuery from raw query parameters.
// Malformed input is never rejected: unknown sort fields fall back to
// created_at, sort order falls back to desc, per_page is clamped into
// [1,100] and non-integer numbers coerce to 0. Unrecognized keys are
// ignored. The empty string counts as "not provided" for every parameter.
func ParseListQuery(values url.Values) ListQuery {
	q := DefaultListQuery()

	q.Search = values.Get("search")
	q.Category = values.Get("category")
	q.Difficulty = values.Get("difficulty")

	q.MinPrepTime = optionalInt(values.Get("min_prep_time"))
	q.MaxPrepTime = optionalInt(values.Get("max_prep_time"))
	q.MinTotalTime = optionalInt(values.Get("min_total_time"))
	q.MaxTotalTime = optionalInt(values.Get("max_total_time"))
	q.MinServings = optionalInt(values.Get("min_servings"))
	q.MaxServings = optionalInt(values.Get("max_servings"))

	if sortBy := values.Get("sort_by"); allowedSortFields[sortBy] {
		q.SortBy = sortBy
	}
	if order := strings.ToLower(values.Get("sort_order")); order == "asc" || order == "desc" {
		q.SortOrder = order
	}

	if raw := values.Get("per_page"); raw != "" {
		q.PerPage = clamp(coerceInt(raw), MinPerPage, MaxPerPage)
	}
	if raw := values.Get("page"); raw != "" {
		if page := coerceInt(raw); page > 0 {
			q.Page = page
		}
	}

	return q
}

// Values renders the query back into URL parameters, omitting everything
// that equals the default. The round trip through ParseListQuery is lossless.
func (q ListQuery) Values() url.Values {
	values := url.Values{}
	setIf := func(key, val string) {
		if val != "" {
			values.Set(key, val)
		}
	}
	setIf("search", q.Search)
	setIf("category", q.Category)
	setIf("difficulty", q.Difficulty)
	setIntIf := func(key string, val *int) {
		if val != nil {
			values.Set(key, strconv.Itoa(*val))
		}
	}
	setIntIf("min_prep_time", q.MinPrepTime)
	setIntIf("max_prep_time", q.MaxPrepTime)
	setIntIf("min_total_time", q.MinTotalTime)
	setIntIf("max_total_time", q.MaxTotalTime)
	setIntIf("min_servings", q.MinServings)
	setIntIf("max_servings", q.MaxServings)
	if q.SortBy != "" && q.SortBy != DefaultSortBy {
		values.Set("sort_by", q.SortBy)
	}
	if q.SortOrder != "" && q.SortOrder != DefaultSortOrder {
		values.Set("sort_order", q.SortOrder)
	}
	if q.Page > 1 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage != 0 && q.PerPage != DefaultPerPage {
		values.Set("per_page", strconv.Itoa(q.PerPage))
	}
	return values
}

// Offset returns the row offset for the requested page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.PerPage
}

// optionalInt treats "" as absent and otherwise coerces, so "abc" becomes 0
// rather than an error.
func optionalInt(raw string) *int {
	if raw == "" {
		return nil
	}
	n := coerceInt(raw)
	return &n
}

func coerceInt(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
