package api

import (
	"net/url"
	"strconv"

	"enrolladmin/internal/listing"
)

// EncodeQuery flattens a list query into URL parameters. Filters are sent
// next to the paging keys; a filter named like a paging key is overridden.
func EncodeQuery(q listing.Query) url.Values {
	v := url.Values{}
	for k, val := range q.Filters {
		if val != "" {
			v.Set(k, val)
		}
	}

	v.Set("page", strconv.Itoa(q.Page))
	v.Set("per_page", strconv.Itoa(q.PerPage))
	v.Del("search")
	v.Del("sort_by")
	v.Del("sort_order")
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Sorted() {
		v.Set("sort_by", q.SortBy)
		v.Set("sort_order", string(q.SortOrder))
	}
	return v
}
