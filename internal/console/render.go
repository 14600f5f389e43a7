package console

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"enrolladmin/internal/api"
	"enrolladmin/internal/listing"
	"enrolladmin/internal/resource"
)

func renderState[T Row](w io.Writer, def resource.Screen, st listing.State[T]) {
	status := ""
	if st.IsLoading {
		status = "  [loading]"
	}
	fmt.Fprintf(w, "\n== %s ==%s\n", def.Title, status)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := make([]string, len(def.Columns))
	for i, c := range def.Columns {
		headers[i] = c.Title + sortMarker(c, st)
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))

	for _, item := range st.Items {
		cells := make([]string, len(def.Columns))
		for i, c := range def.Columns {
			cells[i] = item.Cell(c.Key)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	_ = tw.Flush()

	switch {
	case !st.Loaded:
	case len(st.Items) == 0:
		fmt.Fprintln(w, "(no results)")
	}
	fmt.Fprintln(w, footer(st))
}

func sortMarker[T any](c resource.Column, st listing.State[T]) string {
	if c.Sort == "" || c.Sort != st.SortBy {
		return ""
	}
	if st.SortOrder == listing.Descending {
		return " v"
	}
	return " ^"
}

func footer[T any](st listing.State[T]) string {
	parts := []string{
		fmt.Sprintf("page %d/%d", st.Page, st.LastPage),
		fmt.Sprintf("%d total", st.Total),
		fmt.Sprintf("%d per page", st.PerPage),
	}
	if st.Search != "" {
		parts = append(parts, fmt.Sprintf("search %q", st.Search))
	}
	if st.SortBy != "" {
		parts = append(parts, fmt.Sprintf("sort %s %s", st.SortBy, st.SortOrder))
	}
	if len(st.Filters) > 0 {
		pairs := make([]string, 0, len(st.Filters))
		for _, k := range slices.Sorted(maps.Keys(st.Filters)) {
			pairs = append(pairs, k+"="+st.Filters[k])
		}
		parts = append(parts, "filters "+strings.Join(pairs, ","))
	}
	return "-- " + strings.Join(parts, " | ")
}

// describe turns an error into a one-line message for the user
func describe(err error) string {
	var (
		apiErr   *api.Error
		rejected *listing.RejectedError
		resErr   *resource.Error
	)
	switch {
	case errors.As(err, &apiErr):
		if apiErr.Code == api.CodeTransport {
			return "backend unreachable, try refresh"
		}
		return apiErr.Message
	case errors.As(err, &rejected):
		return rejected.Message
	case errors.As(err, &resErr):
		return resErr.Message
	case errors.Is(err, listing.ErrUnrecognizedEnvelope):
		return "unexpected response from the backend"
	case errors.Is(err, listing.ErrPageSizeNotAllowed):
		return "page size not allowed"
	}
	return err.Error()
}
