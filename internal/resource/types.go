package resource

import "enrolladmin/internal/listing"

// Resource identification, also the REST collection name
type Type string

const (
	Courses      Type = "courses"
	Groups       Type = "groups"
	Enrollments  Type = "enrollments"
	Participants Type = "participants"
	Invoices     Type = "invoices"
	Users        Type = "users"
)

// Types lists every resource the backend exposes
var Types = []Type{Courses, Groups, Enrollments, Participants, Invoices, Users}

// Column is one table column. Sort names the backend sort field; empty
// means the column cannot be sorted.
type Column struct {
	Key   string
	Title string
	Sort  string
}

// FilterKind decides how a filter value is validated
type FilterKind string

const (
	FilterID   FilterKind = "id"
	FilterEnum FilterKind = "enum"
	FilterDate FilterKind = "date"
	FilterText FilterKind = "text"
)

type Filter struct {
	Key    string
	Kind   FilterKind
	Values []string // allowed values for FilterEnum
}

// Screen describes one list view of the dashboard. Several screens can
// share an endpoint and differ only in their fixed or required filters.
type Screen struct {
	Name     string
	Type     Type
	Title    string
	Endpoint string
	Columns  []Column
	Filters  []Filter

	// Defaults are merged under the caller's filters
	Defaults listing.Filters
	// Required filter keys, e.g. the parent id of a nested list
	Required []string
}

// Column returns the column with the given key
func (s Screen) Column(key string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column{}, false
}

// SortField resolves a column key to its backend sort field
func (s Screen) SortField(key string) (string, error) {
	c, ok := s.Column(key)
	if !ok {
		return "", &Error{Code: ErrUnknownColumn, Message: "unknown column " + key}
	}
	if c.Sort == "" {
		return "", &Error{Code: ErrNotSortable, Message: "column " + key + " is not sortable"}
	}
	return c.Sort, nil
}

// Filter returns the filter definition for key
func (s Screen) Filter(key string) (Filter, bool) {
	for _, f := range s.Filters {
		if f.Key == key {
			return f, true
		}
	}
	return Filter{}, false
}

// Error is returned by registry lookups and filter validation
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// Error codes
const (
	ErrScreenNotFound  = "screen_not_found"
	ErrDuplicateScreen = "duplicate_screen"
	ErrInvalidScreen   = "invalid_screen"
	ErrUnknownFilter   = "unknown_filter"
	ErrInvalidFilter   = "invalid_filter"
	ErrMissingFilter   = "missing_filter"
	ErrUnknownColumn   = "unknown_column"
	ErrNotSortable     = "not_sortable"
)
