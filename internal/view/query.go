package view

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"review_analyzer/internal/domain"
)

// Filter is the sentiment filter as the user picks it.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterPositive Filter = "positive"
	FilterNegative Filter = "negative"
	FilterNeutral  Filter = "neutral"
)

var Filters = []Filter{FilterAll, FilterPositive, FilterNegative, FilterNeutral}

// ParseFilter accepts any casing; ok is false for unknown values.
func ParseFilter(s string) (Filter, bool) {
	f := Filter(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Filters, f) {
		return f, true
	}
	return FilterAll, false
}

// Query fully determines the next list request.
type Query struct {
	Filter   Filter
	Product  string
	Page     int
	PageSize int
	Sort     domain.SortKey
}

func DefaultQuery() Query {
	return Query{
		Filter:   FilterAll,
		Page:     domain.DefaultPage,
		PageSize: domain.DefaultPageSize,
		Sort:     domain.SortCreatedAtDesc,
	}
}

// ListParams builds the GET /api/reviews query string. sentiment is sent
// uppercased only when a filter is set; product_name only when non-empty.
func ListParams(q Query) url.Values {
	v := url.Values{}
	if q.Filter != FilterAll && q.Filter != "" {
		v.Set("sentiment", strings.ToUpper(string(q.Filter)))
	}
	if q.Product != "" {
		v.Set("product_name", q.Product)
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	v.Set("page", strconv.Itoa(page))
	v.Set("page_size", strconv.Itoa(q.PageSize))
	v.Set("sort", string(q.Sort))
	return v
}

// Next returns the element after cur in list, wrapping around.
func Next[T comparable](list []T, cur T) T {
	i := slices.Index(list, cur)
	return list[(i+1)%len(list)]
}
