package listing

import (
	"maps"
	"strings"
)

// SortOrder is the direction of a sorted column
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// Filters is the caller-owned key/value mapping merged into every query.
// The controller never inspects it, it only forwards it.
type Filters map[string]string

// Clone returns an independent copy of the filters
func (f Filters) Clone() Filters {
	if f == nil {
		return Filters{}
	}
	return maps.Clone(f)
}

// Query fully determines one fetch
type Query struct {
	Page      int
	PerPage   int
	Search    string
	SortBy    string
	SortOrder SortOrder
	Filters   Filters
}

// Clone returns a copy that shares no mutable state with q
func (q Query) Clone() Query {
	q.Filters = q.Filters.Clone()
	return q
}

// Sorted reports whether the query carries a sort column
func (q Query) Sorted() bool {
	return q.SortBy != ""
}

// Offset is the zero-based index of the first row of the page
func (q Query) Offset() int {
	if q.Page < 1 || q.PerPage < 1 {
		return 0
	}
	return (q.Page - 1) * q.PerPage
}

// nextSort advances the three-state sort cycle asc -> desc -> unsorted for
// column. A column other than the current one always starts ascending.
func nextSort(sortBy string, order SortOrder, column string) (string, SortOrder) {
	if column != sortBy {
		return column, Ascending
	}
	switch order {
	case Ascending:
		return column, Descending
	case Descending:
		return "", ""
	default:
		return column, Ascending
	}
}

func normalizeSearch(text string) string {
	return strings.TrimSpace(text)
}
