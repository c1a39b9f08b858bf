// Package view holds the review analyzer's client state and the pure
// update function that drives it. Side effects are returned as values and
// executed by the caller (the terminal UI or the CLI).
package view

import (
	"net/url"
	"slices"
	"strings"
	"time"

	"review_analyzer/internal/domain"
	"review_analyzer/internal/reviewapi"
)

// DebounceDelay is the quiet period before a query change is fetched.
const DebounceDelay = 300 * time.Millisecond

type Form struct {
	ProductName string
	ReviewText  string
}

type State struct {
	Query      Query
	Form       Form
	Reviews    []domain.Review
	TotalPages int
	Stats      domain.Stats
	HasStats   bool

	Loading bool // latest list request still in flight
	Busy    bool // analyze request in flight
	Error   string
	Success string

	seq      uint64 // last sequence number issued
	listSeq  uint64
	statsSeq uint64
	debounce uint64 // generation of the pending debounce timer
}

func New() State {
	return State{Query: DefaultQuery(), TotalPages: 1, Reviews: []domain.Review{}}
}

// CanPrev and CanNext gate the pagination controls.
func (s State) CanPrev() bool { return s.Query.Page > 1 }
func (s State) CanNext() bool { return s.Query.Page < s.TotalPages }

// ---- events ----

type Event interface{ isEvent() }

type (
	// Init is the first mount: fetch at once, no debounce.
	Init struct{}

	FilterChanged   struct{ Filter Filter }
	ProductChanged  struct{ Product string }
	PageChanged     struct{ Page int }
	PageNext        struct{}
	PagePrev        struct{}
	PageSizeChanged struct{ PageSize int }
	SortChanged     struct{ Sort domain.SortKey }
	ResetFilters    struct{}

	DebounceFired struct{ Gen uint64 }

	ListLoaded struct {
		Seq  uint64
		List reviewapi.ReviewList
		Err  error
	}
	StatsLoaded struct {
		Seq   uint64
		Stats domain.Stats
		Err   error
	}

	FormEdited struct{ ProductName, ReviewText string }
	Submit     struct{}
	Analyzed   struct {
		Review domain.Review
		Err    error
	}

	Dismiss struct{}
)

func (Init) isEvent()            {}
func (FilterChanged) isEvent()   {}
func (ProductChanged) isEvent()  {}
func (PageChanged) isEvent()     {}
func (PageNext) isEvent()        {}
func (PagePrev) isEvent()        {}
func (PageSizeChanged) isEvent() {}
func (SortChanged) isEvent()     {}
func (ResetFilters) isEvent()    {}
func (DebounceFired) isEvent()   {}
func (ListLoaded) isEvent()      {}
func (StatsLoaded) isEvent()     {}
func (FormEdited) isEvent()      {}
func (Submit) isEvent()          {}
func (Analyzed) isEvent()        {}
func (Dismiss) isEvent()         {}

// ---- effects ----

type Effect interface{ isEffect() }

type (
	FetchList struct {
		Seq    uint64
		Params url.Values
	}
	FetchStats struct{ Seq uint64 }
	// Schedule asks for DebounceFired{Gen} after the delay.
	Schedule struct {
		Gen   uint64
		After time.Duration
	}
	Analyze struct{ ProductName, ReviewText string }
)

func (FetchList) isEffect()  {}
func (FetchStats) isEffect() {}
func (Schedule) isEffect()   {}
func (Analyze) isEffect()    {}

// Update applies ev to s and returns the new state plus the effects to run.
func Update(s State, ev Event) (State, []Effect) {
	switch e := ev.(type) {
	case Init:
		return s.fetch()

	case FilterChanged:
		if !slices.Contains(Filters, e.Filter) {
			return s, nil
		}
		q := s.Query
		q.Filter, q.Page = e.Filter, 1
		return s.requery(q)

	case ProductChanged:
		q := s.Query
		q.Product, q.Page = e.Product, 1
		return s.requery(q)

	case PageChanged:
		q := s.Query
		q.Page = clampPage(e.Page, s.TotalPages)
		return s.requery(q)

	case PageNext:
		if !s.CanNext() {
			return s, nil
		}
		q := s.Query
		q.Page++
		return s.requery(q)

	case PagePrev:
		if !s.CanPrev() {
			return s, nil
		}
		q := s.Query
		q.Page--
		return s.requery(q)

	case PageSizeChanged:
		if !slices.Contains(domain.PageSizes, e.PageSize) {
			return s, nil
		}
		q := s.Query
		q.PageSize, q.Page = e.PageSize, 1
		return s.requery(q)

	case SortChanged:
		if !slices.Contains(domain.SortKeys, e.Sort) {
			return s, nil
		}
		q := s.Query
		q.Sort, q.Page = e.Sort, 1
		return s.requery(q)

	case ResetFilters:
		q := s.Query
		q.Filter, q.Product, q.Page = FilterAll, "", 1
		return s.requery(q)

	case DebounceFired:
		if e.Gen != s.debounce {
			return s, nil // superseded
		}
		return s.fetch()

	case ListLoaded:
		return s.applyList(e)

	case StatsLoaded:
		if e.Seq != s.statsSeq || e.Err != nil {
			return s, nil
		}
		s.Stats, s.HasStats = e.Stats, true
		return s, nil

	case FormEdited:
		if s.Busy {
			return s, nil
		}
		s.Form = Form{ProductName: e.ProductName, ReviewText: e.ReviewText}
		return s, nil

	case Submit:
		if s.Busy {
			return s, nil
		}
		if msg := Validate(s.Form.ProductName, s.Form.ReviewText); msg != "" {
			s.Error, s.Success = msg, ""
			return s, nil
		}
		s.Busy = true
		s.Error, s.Success = "", ""
		return s, []Effect{Analyze{
			ProductName: strings.TrimSpace(s.Form.ProductName),
			ReviewText:  strings.TrimSpace(s.Form.ReviewText),
		}}

	case Analyzed:
		s.Busy = false
		if e.Err != nil {
			s.Error = SubmitErrorMessage(e.Err)
			return s, nil
		}
		s.Form = Form{}
		s.Success = Confirmation(e.Review)
		return s.fetch()

	case Dismiss:
		s.Error, s.Success = "", ""
		return s, nil
	}
	return s, nil
}

func (s State) applyList(e ListLoaded) (State, []Effect) {
	if e.Seq != s.listSeq {
		return s, nil // stale
	}
	s.Loading = false
	if e.Err != nil {
		s.Error = ListErrorMessage(e.Err)
		return s, nil
	}
	s.Reviews = e.List.Reviews
	if s.Reviews == nil {
		s.Reviews = []domain.Review{}
	}
	s.TotalPages = e.List.TotalPages
	if s.TotalPages < 1 {
		s.TotalPages = 1
	}
	if s.Query.Page > s.TotalPages {
		q := s.Query
		q.Page = s.TotalPages
		return s.requery(q)
	}
	return s, nil
}

// requery stores q and, when it differs, schedules a debounced fetch that
// supersedes any pending one.
func (s State) requery(q Query) (State, []Effect) {
	if q == s.Query {
		return s, nil
	}
	s.Query = q
	s.debounce++
	return s, []Effect{Schedule{Gen: s.debounce, After: DebounceDelay}}
}

// fetch issues list and stats requests for the current query.
func (s State) fetch() (State, []Effect) {
	s.seq++
	s.listSeq = s.seq
	s.seq++
	s.statsSeq = s.seq
	s.Loading = true
	s.Error = ""
	return s, []Effect{
		FetchList{Seq: s.listSeq, Params: ListParams(s.Query)},
		FetchStats{Seq: s.statsSeq},
	}
}

func clampPage(p, total int) int {
	if total < 1 {
		total = 1
	}
	if p < 1 {
		return 1
	}
	if p > total {
		return total
	}
	return p
}
