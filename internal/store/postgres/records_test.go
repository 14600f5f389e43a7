package postgres

import (
	"encoding/json"
	"net/url"
	"os"
	"testing"

	"enrolladmin/internal/resource"
	"enrolladmin/internal/sandbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestListQuery_Plain(t *testing.T) {
	sql, args := listQuery(resource.Courses, sandbox.ListRequest{Page: 1, PerPage: 10})
	assert.Equal(t, `SELECT doc FROM sandbox_records WHERE resource = $1 ORDER BY id`, sql)
	assert.Equal(t, []any{"courses"}, args)
}

func TestListQuery_BindsEverything(t *testing.T) {
	sql, args := listQuery(resource.Invoices, sandbox.ListRequest{
		Page:      1,
		PerPage:   10,
		Search:    "INV-",
		SortBy:    "amount",
		SortOrder: "desc",
		Filters:   map[string]string{"status": "unpaid", "due_before": "2026-02-01"},
	})

	assert.Contains(t, sql, `strpos(search, $2::text) > 0`)
	assert.Contains(t, sql, `(doc->>$3::text) COLLATE "C" < $4::text`)
	assert.Contains(t, sql, `doc->>$5::text = $6::text`)
	assert.Contains(t, sql, `DESC, id`)
	assert.NotContains(t, sql, "unpaid")
	assert.Equal(t, []any{"invoices", "inv-", "due_on", "2026-02-01", "status", "unpaid", "amount"}, args)
}

func TestListQuery_RangeFromIsInclusive(t *testing.T) {
	sql, _ := listQuery(resource.Groups, sandbox.ListRequest{Filters: map[string]string{"starts_from": "2026-03-01"}})
	assert.Contains(t, sql, `COLLATE "C" >= $3::text`)
}

// TestRecords_MatchesMemoryStore runs against a real database when
// SANDBOX_TEST_DATABASE_URL is set.
func TestRecords_MatchesMemoryStore(t *testing.T) {
	dsn := os.Getenv("SANDBOX_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("SANDBOX_TEST_DATABASE_URL not set")
	}
	ctx := t.Context()

	pool, err := Open(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	recs := NewRecords(pool)
	require.NoError(t, recs.Migrate(ctx))
	_, err = pool.Exec(ctx, `TRUNCATE sandbox_records`)
	require.NoError(t, err)

	n, err := recs.Seed(ctx, 42)
	require.NoError(t, err)
	require.Positive(t, n)
	again, err := recs.Seed(ctx, 42)
	require.NoError(t, err)
	assert.Zero(t, again)

	mem := sandbox.NewStore(42)
	queries := map[resource.Type][]string{
		resource.Courses:      {"page=2", "search=it-", "sort_by=price&sort_order=desc&per_page=100", "status=published&sort_by=title"},
		resource.Groups:       {"starts_from=2026-03-01&per_page=100", "sort_by=enrolled"},
		resource.Invoices:     {"status=unpaid&sort_by=amount&per_page=50", "due_before=2026-01-01"},
		resource.Participants: {"sort_by=last_name&per_page=100", "search=acme"},
		resource.Users:        {"sort_by=last_login_at", "sort_by=last_login_at&sort_order=desc"},
	}
	for typ, qs := range queries {
		for _, raw := range qs {
			t.Run(string(typ)+"?"+raw, func(t *testing.T) {
				q, err := url.ParseQuery(raw)
				require.NoError(t, err)
				req, err := sandbox.ParseListRequest(q)
				require.NoError(t, err)

				want, err := mem.List(ctx, typ, req)
				require.NoError(t, err)
				got, err := recs.List(ctx, typ, req)
				require.NoError(t, err)

				assert.Equal(t, want.Total, got.Total)
				assert.Equal(t, want.LastPage, got.LastPage)
				assert.Equal(t, ids(want.Items), ids(got.Items))
			})
		}
	}

	require.NoError(t, recs.Delete(ctx, resource.Courses, 5))
	assert.ErrorIs(t, recs.Delete(ctx, resource.Courses, 5), sandbox.ErrNotFound)
	assert.ErrorIs(t, recs.Delete(ctx, "rooms", 1), sandbox.ErrUnknownResource)
	count, err := recs.Count(ctx, resource.Courses)
	require.NoError(t, err)
	memCount, err := mem.Count(ctx, resource.Courses)
	require.NoError(t, err)
	assert.Equal(t, memCount-1, count)
}

func ids(rows []json.RawMessage) []int64 {
	out := make([]int64, len(rows))
	for i, raw := range rows {
		out[i] = gjson.GetBytes(raw, "id").Int()
	}
	return out
}
