package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"enrolladmin/internal/domain/course"
	"enrolladmin/internal/listing"
	"enrolladmin/internal/resource"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fakeLister struct {
	mu      sync.Mutex
	rows    []course.Course
	queries []listing.Query
	deleted []string
}

func newFakeLister(n int) *fakeLister {
	f := &fakeLister{}
	for i := 1; i <= n; i++ {
		f.rows = append(f.rows, course.Course{
			ID:       int64(i),
			Code:     fmt.Sprintf("IT-%03d", i),
			Title:    fmt.Sprintf("Course %d", i),
			Status:   course.StatusPublished,
			Price:    decimal.NewFromInt(100),
			Currency: "EUR",
		})
	}
	return f
}

func (f *fakeLister) Fetch(_ context.Context, q listing.Query) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q.Clone())

	from := min(q.Offset(), len(f.rows))
	to := min(from+q.PerPage, len(f.rows))
	return json.Marshal(map[string]any{
		"data":         f.rows[from:to],
		"total":        len(f.rows),
		"current_page": q.Page,
	})
}

func (f *fakeLister) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == "999" {
		return errors.New("record not found")
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeLister) lastQuery() listing.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return listing.Query{}
	}
	return f.queries[len(f.queries)-1]
}

func (f *fakeLister) deletedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

func coursesScreen(t *testing.T) resource.Screen {
	t.Helper()
	s, err := resource.NewDefaultRegistry().Get("courses")
	require.NoError(t, err)
	return s
}

type session struct {
	t    *testing.T
	in   *io.PipeWriter
	out  *syncBuffer
	done chan error
}

func start(t *testing.T, r Runner) *session {
	t.Helper()
	pr, pw := io.Pipe()
	s := &session{t: t, in: pw, out: &syncBuffer{}, done: make(chan error, 1)}
	go func() { s.done <- r.Run(context.Background(), pr, s.out) }()
	t.Cleanup(func() { _ = pw.Close() })
	return s
}

func (s *session) send(line string) {
	s.t.Helper()
	_, err := io.WriteString(s.in, line+"\n")
	require.NoError(s.t, err)
}

func (s *session) waitFor(text string) {
	s.t.Helper()
	require.Eventually(s.t, func() bool { return strings.Contains(s.out.String(), text) },
		2*time.Second, 5*time.Millisecond, "output never contained %q:\n%s", text, s.out.String())
}

func (s *session) eventually(cond func(q listing.Query) bool, lister *fakeLister) {
	s.t.Helper()
	require.Eventually(s.t, func() bool { return cond(lister.lastQuery()) },
		2*time.Second, 5*time.Millisecond)
}

func TestScreen_Commands(t *testing.T) {
	lister := newFakeLister(25)
	r, err := Open(coursesScreen(t), lister, nil, listing.Options{Debounce: 10 * time.Millisecond})
	require.NoError(t, err)
	s := start(t, r)

	s.waitFor("page 1/3 | 25 total | 10 per page")
	s.waitFor("IT-010")

	s.send("next")
	s.waitFor("IT-011")
	assert.Equal(t, 2, lister.lastQuery().Page)

	s.send("sort title")
	s.waitFor("Title ^")
	s.eventually(func(q listing.Query) bool {
		return q.SortBy == "title" && q.SortOrder == listing.Ascending && q.Page == 1
	}, lister)

	s.send("sort phone")
	s.waitFor("! unknown column phone")

	s.send("size 7")
	s.waitFor("! page size not allowed")

	s.send("size 25")
	s.waitFor("page 1/1 | 25 total | 25 per page")

	s.send("filter status=published category=it")
	s.waitFor("filters category=it,status=published")
	s.eventually(func(q listing.Query) bool {
		return q.Filters["status"] == "published" && q.Filters["category"] == "it"
	}, lister)

	s.send("filter colour=red")
	s.waitFor("! unknown filter colour for courses")

	s.send("filter category=")
	s.waitFor("filters status=published\n")

	s.send("search  course 1 ")
	s.eventually(func(q listing.Query) bool { return q.Search == "course 1" }, lister)

	s.send("delete 3")
	s.waitFor("deleted 3")
	assert.Equal(t, []string{"3"}, lister.deletedIDs())

	s.send("delete 999")
	s.waitFor("! record not found")

	s.send("delete abc")
	s.waitFor("! delete needs a numeric id")

	s.send("bogus")
	s.waitFor(`! unknown command "bogus"`)

	s.send("help")
	s.waitFor("sort COLUMN")

	s.send("quit")
	select {
	case err := <-s.done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after quit")
	}
}

func TestScreen_ClearRestoresScreenDefaults(t *testing.T) {
	def, err := resource.NewDefaultRegistry().Get("courses-published")
	require.NoError(t, err)

	lister := newFakeLister(5)
	r, err := Open(def, lister, nil, listing.Options{Debounce: 10 * time.Millisecond})
	require.NoError(t, err)
	s := start(t, r)

	s.waitFor("filters status=published")
	s.send("filter status=draft")
	s.eventually(func(q listing.Query) bool { return q.Filters["status"] == "draft" }, lister)
	s.send("clear")
	s.eventually(func(q listing.Query) bool { return q.Filters["status"] == "published" }, lister)

	s.send("quit")
	require.NoError(t, <-s.done)
}

func TestScreen_EOFEndsRun(t *testing.T) {
	r, err := Open(coursesScreen(t), newFakeLister(3), nil, listing.Options{})
	require.NoError(t, err)

	out := &syncBuffer{}
	err = r.Run(context.Background(), strings.NewReader("refresh\n"), out)
	assert.NoError(t, err)
}

func TestOpen_RequiredFilter(t *testing.T) {
	def, err := resource.NewDefaultRegistry().Get("group-enrollments")
	require.NoError(t, err)

	_, err = Open(def, newFakeLister(1), nil, listing.Options{})
	var rerr *resource.Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, resource.ErrMissingFilter, rerr.Code)

	r, err := Open(def, newFakeLister(1), listing.Filters{"group_id": "3"}, listing.Options{})
	require.NoError(t, err)
	assert.NotNil(t, r)
}

func TestRenderState(t *testing.T) {
	def := coursesScreen(t)
	var buf bytes.Buffer

	renderState(&buf, def, listing.State[course.Course]{
		Items:     []course.Course{{ID: 1, Code: "IT-001", Title: "Go", Price: decimal.NewFromInt(10), Currency: "EUR"}},
		Total:     11,
		Page:      1,
		PerPage:   10,
		LastPage:  2,
		Search:    "go",
		SortBy:    "price",
		SortOrder: listing.Descending,
		Loaded:    true,
		IsLoading: true,
	})
	out := buf.String()
	assert.Contains(t, out, "== Courses ==  [loading]")
	assert.Contains(t, out, "Price v")
	assert.Contains(t, out, "10.00 EUR")
	assert.Contains(t, out, `-- page 1/2 | 11 total | 10 per page | search "go" | sort price desc`)

	buf.Reset()
	renderState(&buf, def, listing.State[course.Course]{Page: 1, PerPage: 10, LastPage: 1, Loaded: true})
	assert.Contains(t, buf.String(), "(no results)")
}
