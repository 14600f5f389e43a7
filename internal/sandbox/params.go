package sandbox

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

var reservedParams = map[string]bool{
	"page": true, "per_page": true, "search": true,
	"sort_by": true, "sort_order": true, "envelope": true,
}

// ListRequest is a parsed list query string
type ListRequest struct {
	Page      int
	PerPage   int
	Search    string
	SortBy    string
	SortOrder string
	Filters   map[string]string
}

// Offset of the first row of the page
func (r ListRequest) Offset() int {
	return (r.Page - 1) * r.PerPage
}

// ValidationError is reported to clients as 422
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ParseListRequest reads paging, search, sort and filter parameters. Every
// non-reserved, non-empty parameter is a filter.
func ParseListRequest(q url.Values) (ListRequest, error) {
	req := ListRequest{Page: 1, PerPage: DefaultPerPage, Filters: map[string]string{}}

	var err error
	if req.Page, err = positiveInt(q, "page", 1); err != nil {
		return req, err
	}
	if req.PerPage, err = positiveInt(q, "per_page", DefaultPerPage); err != nil {
		return req, err
	}
	if req.PerPage > MaxPerPage {
		return req, &ValidationError{Field: "per_page", Message: fmt.Sprintf("must be at most %d", MaxPerPage)}
	}

	req.Search = strings.TrimSpace(q.Get("search"))
	req.SortBy = strings.TrimSpace(q.Get("sort_by"))
	req.SortOrder = strings.ToLower(strings.TrimSpace(q.Get("sort_order")))
	switch {
	case req.SortBy == "":
		req.SortOrder = ""
	case req.SortOrder == "":
		req.SortOrder = "asc"
	case req.SortOrder != "asc" && req.SortOrder != "desc":
		return req, &ValidationError{Field: "sort_order", Message: "must be asc or desc"}
	}

	for k, vs := range q {
		if reservedParams[k] || len(vs) == 0 {
			continue
		}
		if v := strings.TrimSpace(vs[0]); v != "" {
			req.Filters[k] = v
		}
	}
	return req, nil
}

func positiveInt(q url.Values, key string, def int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &ValidationError{Field: key, Message: "must be a positive integer"}
	}
	return n, nil
}
