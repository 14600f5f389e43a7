package sandbox

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"enrolladmin/internal/resource"

	"github.com/tidwall/gjson"
)

// Backend stores the sandbox rows. Store keeps them in memory, the
// postgres package in a jsonb table.
type Backend interface {
	List(ctx context.Context, t resource.Type, req ListRequest) (ListResult, error)
	Delete(ctx context.Context, t resource.Type, id int64) error
	Count(ctx context.Context, t resource.Type) (int, error)
}

// searchFields are matched case-insensitively by the search parameter
var searchFields = map[resource.Type][]string{
	resource.Courses:      {"code", "title", "category"},
	resource.Groups:       {"name", "course", "instructor", "location"},
	resource.Enrollments:  {"participant", "course", "group"},
	resource.Participants: {"first_name", "last_name", "email", "company"},
	resource.Invoices:     {"number", "participant"},
	resource.Users:        {"name", "email"},
}

// rangeFilters compare a row field against the filter value instead of
// matching it exactly
var rangeFilters = map[string]struct {
	field  string
	before bool
}{
	"starts_from": {field: "starts_on"},
	"due_before":  {field: "due_on", before: true},
}

// filters and sorts every screen of a resource may send
var allowedFilters, allowedSorts = allowedKeys()

func allowedKeys() (filters, sorts map[resource.Type]map[string]bool) {
	filters = make(map[resource.Type]map[string]bool, len(resource.Types))
	sorts = make(map[resource.Type]map[string]bool, len(resource.Types))
	for _, t := range resource.Types {
		filters[t] = map[string]bool{}
		sorts[t] = map[string]bool{}
	}
	for _, sc := range resource.DefaultScreens() {
		for _, f := range sc.Filters {
			filters[sc.Type][f.Key] = true
		}
		for _, c := range sc.Columns {
			if c.Sort != "" {
				sorts[sc.Type][c.Sort] = true
			}
		}
	}
	return filters, sorts
}

// CheckRequest rejects resources, filters and sort fields the sandbox does
// not serve.
func CheckRequest(t resource.Type, req ListRequest) error {
	if !slices.Contains(resource.Types, t) {
		return ErrUnknownResource
	}
	for k := range req.Filters {
		if !allowedFilters[t][k] {
			return &ValidationError{Field: k, Message: "unknown filter"}
		}
	}
	if req.SortBy != "" && !allowedSorts[t][req.SortBy] {
		return &ValidationError{Field: "sort_by", Message: fmt.Sprintf("cannot sort %s by %s", t, req.SortBy)}
	}
	return nil
}

// SearchText is the lowercased text the search parameter is matched against
func SearchText(t resource.Type, raw json.RawMessage) string {
	parts := make([]string, 0, len(searchFields[t]))
	for _, f := range searchFields[t] {
		parts = append(parts, gjson.GetBytes(raw, f).String())
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// RangeFilter reports the row field a range filter key compares, and
// whether rows must fall strictly before the value.
func RangeFilter(key string) (field string, before, ok bool) {
	rf, ok := rangeFilters[key]
	return rf.field, rf.before, ok
}

// Paginate cuts one page out of the ordered matching rows
func Paginate(all []json.RawMessage, req ListRequest) ListResult {
	if all == nil {
		all = []json.RawMessage{}
	}
	from := min(req.Offset(), len(all))
	to := min(from+req.PerPage, len(all))
	return ListResult{
		Items:    all[from:to],
		All:      all,
		Total:    len(all),
		Page:     req.Page,
		PerPage:  req.PerPage,
		LastPage: lastPage(len(all), req.PerPage),
	}
}

func lastPage(total, perPage int) int {
	if total <= 0 || perPage < 1 {
		return 1
	}
	return (total + perPage - 1) / perPage
}
