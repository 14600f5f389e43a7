package sandbox

import (
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"

	"enrolladmin/internal/resource"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func list(t *testing.T, s *Store, typ resource.Type, query string) ListResult {
	t.Helper()
	q, err := url.ParseQuery(query)
	require.NoError(t, err)
	req, err := ParseListRequest(q)
	require.NoError(t, err)
	res, err := s.List(t.Context(), typ, req)
	require.NoError(t, err)
	return res
}

func count(t *testing.T, s *Store, typ resource.Type) int {
	t.Helper()
	n, err := s.Count(t.Context(), typ)
	require.NoError(t, err)
	return n
}

func field(raw json.RawMessage, key string) gjson.Result {
	return gjson.GetBytes(raw, key)
}

func TestNewStore_Deterministic(t *testing.T) {
	a := list(t, NewStore(42), resource.Invoices, "per_page=100")
	b := list(t, NewStore(42), resource.Invoices, "per_page=100")
	assert.Equal(t, a, b)

	s := NewStore(7)
	assert.Equal(t, seedCourses, count(t, s, resource.Courses))
	assert.Equal(t, seedUsers, count(t, s, resource.Users))
	assert.Equal(t, seedEnrollments, count(t, s, resource.Enrollments))
	assert.Positive(t, count(t, s, resource.Invoices))

	_, err := s.Count(t.Context(), "rooms")
	assert.ErrorIs(t, err, ErrUnknownResource)
}

func TestStore_Paginate(t *testing.T) {
	s := NewStore(42)

	res := list(t, s, resource.Courses, "page=2&per_page=10")
	assert.Len(t, res.Items, 10)
	assert.Len(t, res.All, seedCourses)
	assert.Equal(t, seedCourses, res.Total)
	assert.Equal(t, 3, res.LastPage)
	assert.Equal(t, int64(11), field(res.Items[0], "id").Int())

	res = list(t, s, resource.Courses, "page=3&per_page=10")
	assert.Len(t, res.Items, 4)

	res = list(t, s, resource.Courses, "page=9&per_page=10")
	assert.Empty(t, res.Items)
	assert.Equal(t, seedCourses, res.Total)
	assert.Equal(t, 9, res.Page)
}

func TestStore_Search(t *testing.T) {
	res := list(t, NewStore(42), resource.Courses, "search=IT-&per_page=100")
	assert.Equal(t, 5, res.Total)
	for _, raw := range res.Items {
		assert.True(t, strings.HasPrefix(field(raw, "code").String(), "IT-"))
	}
}

func TestStore_Filters(t *testing.T) {
	s := NewStore(42)

	res := list(t, s, resource.Invoices, "status=unpaid&per_page=100")
	require.NotZero(t, res.Total)
	for _, raw := range res.All {
		assert.Equal(t, "unpaid", field(raw, "status").String())
	}

	res = list(t, s, resource.Enrollments, "group_id=4&per_page=100")
	for _, raw := range res.All {
		assert.Equal(t, int64(4), field(raw, "group_id").Int())
	}

	res = list(t, s, resource.Groups, "starts_from=2026-03-01&per_page=100")
	require.NotZero(t, res.Total)
	for _, raw := range res.All {
		assert.GreaterOrEqual(t, field(raw, "starts_on").String(), "2026-03-01")
	}

	res = list(t, s, resource.Invoices, "due_before=2026-01-01&per_page=100")
	for _, raw := range res.All {
		assert.Less(t, field(raw, "due_on").String(), "2026-01-01")
	}
}

func TestStore_Sort(t *testing.T) {
	s := NewStore(42)

	res := list(t, s, resource.Courses, "sort_by=price&sort_order=desc&per_page=100")
	for i := 1; i < len(res.Items); i++ {
		prev := decimal.RequireFromString(field(res.Items[i-1], "price").String())
		cur := decimal.RequireFromString(field(res.Items[i], "price").String())
		assert.True(t, prev.GreaterThanOrEqual(cur), "%s before %s", prev, cur)
	}

	res = list(t, s, resource.Participants, "sort_by=last_name&per_page=100")
	for i := 1; i < len(res.Items); i++ {
		assert.LessOrEqual(t,
			strings.ToLower(field(res.Items[i-1], "last_name").String()),
			strings.ToLower(field(res.Items[i], "last_name").String()))
	}

	res = list(t, s, resource.Users, "sort_by=last_login_at")
	assert.Equal(t, gjson.Null, field(res.All[0], "last_login_at").Type)
}

func TestStore_Rejects(t *testing.T) {
	s := NewStore(42)
	var verr *ValidationError

	_, err := s.List(t.Context(), resource.Courses, ListRequest{Page: 1, PerPage: 10, Filters: map[string]string{"colour": "red"}})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "colour", verr.Field)

	_, err = s.List(t.Context(), resource.Courses, ListRequest{Page: 1, PerPage: 10, SortBy: "secret"})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "sort_by", verr.Field)

	_, err = s.List(t.Context(), "rooms", ListRequest{Page: 1, PerPage: 10})
	assert.ErrorIs(t, err, ErrUnknownResource)
}

func TestStore_Delete(t *testing.T) {
	s := NewStore(42)

	require.NoError(t, s.Delete(t.Context(), resource.Courses, 3))
	assert.Equal(t, seedCourses-1, count(t, s, resource.Courses))
	assert.ErrorIs(t, s.Delete(t.Context(), resource.Courses, 3), ErrNotFound)
	assert.ErrorIs(t, s.Delete(t.Context(), "rooms", 1), ErrUnknownResource)
}

func TestPaginate(t *testing.T) {
	res := Paginate(nil, ListRequest{Page: 1, PerPage: 10})
	assert.NotNil(t, res.Items)
	assert.Zero(t, res.Total)
	assert.Equal(t, 1, res.LastPage)

	rows := make([]json.RawMessage, 11)
	res = Paginate(rows, ListRequest{Page: 2, PerPage: 10})
	assert.Len(t, res.Items, 1)
	assert.Equal(t, 2, res.LastPage)
}

func TestCheckRequest(t *testing.T) {
	assert.NoError(t, CheckRequest(resource.Enrollments, ListRequest{Filters: map[string]string{"group_id": "4"}, SortBy: "status"}))
	assert.ErrorIs(t, CheckRequest("rooms", ListRequest{}), ErrUnknownResource)

	field, before, ok := RangeFilter("due_before")
	assert.True(t, ok)
	assert.True(t, before)
	assert.Equal(t, "due_on", field)
	_, _, ok = RangeFilter("status")
	assert.False(t, ok)
}

func TestParseListRequest(t *testing.T) {
	q, _ := url.ParseQuery("page=2&per_page=25&search=+go+&sort_by=title&status=published&category=&envelope=bare")
	req, err := ParseListRequest(q)
	require.NoError(t, err)
	assert.Equal(t, ListRequest{
		Page:      2,
		PerPage:   25,
		Search:    "go",
		SortBy:    "title",
		SortOrder: "asc",
		Filters:   map[string]string{"status": "published"},
	}, req)

	for _, bad := range []string{"page=0", "page=x", "per_page=101", "per_page=-1", "sort_by=title&sort_order=up"} {
		q, _ := url.ParseQuery(bad)
		_, err := ParseListRequest(q)
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr), bad)
	}
}
