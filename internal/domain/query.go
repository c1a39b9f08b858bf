package domain

import "strings"

type SortKey string

const (
	SortCreatedAtDesc  SortKey = "created_at_desc"
	SortCreatedAtAsc   SortKey = "created_at_asc"
	SortConfidenceDesc SortKey = "confidence_desc"
	SortConfidenceAsc  SortKey = "confidence_asc"
)

// SortKeys is the order offered to users.
var SortKeys = []SortKey{SortCreatedAtDesc, SortCreatedAtAsc, SortConfidenceDesc, SortConfidenceAsc}

// PageSizes are the page sizes a client may pick from.
var PageSizes = []int{5, 10, 20, 50}

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ParseSortKey falls back to newest-first for anything unknown.
func ParseSortKey(s string) SortKey {
	k := SortKey(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range SortKeys {
		if k == known {
			return k
		}
	}
	return SortCreatedAtDesc
}

type ListQuery struct {
	Sentiment   *Sentiment
	ProductName string
	Page        int
	PageSize    int
	Sort        SortKey
}

// Normalize clamps paging the way the API always has: page<1 -> 1,
// page_size outside 1..100 -> 10.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.PageSize < 1 || q.PageSize > MaxPageSize {
		q.PageSize = DefaultPageSize
	}
	q.Sort = ParseSortKey(string(q.Sort))
	q.ProductName = strings.TrimSpace(q.ProductName)
	return q
}

func (q ListQuery) Offset() int { return (q.Page - 1) * q.PageSize }

type ReviewsPage struct {
	Items      []Review `json:"reviews"`
	Total      int      `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
}

// TotalPages is ceil(total/pageSize); zero rows means zero pages.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}
