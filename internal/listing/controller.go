// Package listing implements the remote paginated list controller shared by
// every list screen of the dashboard.
//
// A Controller owns the query (page, page size, search, sort, filters) and
// the last reconciled result. Mutators update the query synchronously and
// fetch asynchronously; each fetch is tagged with a generation and only the
// response of the latest generation may write state ("last request issued
// wins"). Search input is debounced. Consumers read State or listen on
// Changes and Errors.
package listing

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// State is a read-only snapshot of a Controller
type State[T any] struct {
	Items     []T
	Total     int
	Page      int
	PerPage   int
	LastPage  int
	Search    string // pending input, may be ahead of the committed query
	SortBy    string
	SortOrder SortOrder
	Filters   Filters
	IsLoading bool
	Loaded    bool
}

// Controller mediates all fetches of one list screen
type Controller[T any] struct {
	fetcher   Fetcher
	pageSizes []int
	timeout   time.Duration
	logger    zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	query      Query
	applied    Query // query of the result on display
	pending    string
	result     Result[T]
	loaded     bool
	loading    bool
	generation uint64
	search     debouncer
	closed     bool

	changes chan State[T]
	errs    chan error

	// onReconcile observes every completed fetch; tests use it to wait for
	// stale responses to be dropped.
	onReconcile func(generation uint64, stale bool)
}

// New creates a controller for one screen. Nothing is fetched until Load.
func New[T any](fetcher Fetcher, opts Options) (*Controller[T], error) {
	if fetcher == nil {
		return nil, ErrNilFetcher
	}
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Controller[T]{
		fetcher:   fetcher,
		pageSizes: opts.PageSizes,
		timeout:   opts.FetchTimeout,
		logger:    *opts.Logger,
		ctx:       ctx,
		cancel:    cancel,
		query: Query{
			Page:      1,
			PerPage:   opts.PerPage,
			Search:    normalizeSearch(opts.Search),
			SortBy:    opts.SortBy,
			SortOrder: opts.SortOrder,
			Filters:   opts.Filters.Clone(),
		},
		pending: opts.Search,
		result:  emptyResult[T](),
		search:  debouncer{clock: opts.Clock, delay: opts.Debounce},
		changes: make(chan State[T], 1),
		errs:    make(chan error, 1),
	}, nil
}

// Load issues the initial fetch
func (c *Controller[T]) Load() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchLocked("load")
}

// GoToPage moves to page n, clamped to [1, LastPage]. Repeating the current
// page once it has loaded is a no-op.
func (c *Controller[T]) GoToPage(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	page := max(n, 1)
	if c.loaded {
		page = clamp(page, 1, c.result.LastPage)
	}
	if c.loaded && page == c.query.Page {
		return
	}
	c.query.Page = page
	c.fetchLocked("page")
}

// ChangePerPage switches the page size and returns to page 1
func (c *Controller[T]) ChangePerPage(size int) error {
	if !slices.Contains(c.pageSizes, size) {
		return ErrPageSizeNotAllowed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && size == c.query.PerPage && c.query.Page == 1 {
		return nil
	}
	c.query.PerPage = size
	c.query.Page = 1
	c.fetchLocked("per_page")
	return nil
}

// HandleSearch records the input immediately and fetches once the input
// has been quiet for the debounce interval.
func (c *Controller[T]) HandleSearch(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.pending = text
	c.search.schedule(c.fireSearch)
	c.publishLocked()
}

func (c *Controller[T]) fireSearch(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.search.claim(seq) {
		return
	}

	search := normalizeSearch(c.pending)
	if search == c.query.Search {
		return
	}
	c.query.Search = search
	c.query.Page = 1
	c.fetchLocked("search")
}

// HandleSort cycles column through ascending, descending and unsorted
func (c *Controller[T]) HandleSort(column string) {
	if column == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.query.SortBy, c.query.SortOrder = nextSort(c.query.SortBy, c.query.SortOrder, column)
	c.query.Page = 1
	c.fetchLocked("sort")
}

// Refetch re-issues the current query, typically after a mutation elsewhere
func (c *Controller[T]) Refetch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fetchLocked("refetch")
}

// SetFilters replaces the caller filters and re-queries from page 1
func (c *Controller[T]) SetFilters(filters Filters) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.query.Filters = filters.Clone()
	c.query.Page = 1
	c.fetchLocked("filters")
}

// State returns a snapshot of the controller
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Query returns a copy of the committed query
func (c *Controller[T]) Query() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query.Clone()
}

// Changes delivers the latest snapshot after every state change. Only the
// most recent undelivered snapshot is kept. Closed by Close.
func (c *Controller[T]) Changes() <-chan State[T] {
	return c.changes
}

// Errors delivers authoritative fetch failures as *FetchError. Closed by
// Close.
func (c *Controller[T]) Errors() <-chan error {
	return c.errs
}

// Close stops the debounce timer and drops every response still in flight
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.search.cancel()
	c.cancel()
	close(c.changes)
	close(c.errs)
}

func (c *Controller[T]) fetchLocked(reason string) {
	if c.closed {
		return
	}

	c.generation++
	gen := c.generation
	q := c.query.Clone()
	c.loading = true
	c.publishLocked()

	c.logger.Debug().
		Uint64("generation", gen).
		Str("reason", reason).
		Int("page", q.Page).
		Int("per_page", q.PerPage).
		Str("search", q.Search).
		Str("sort_by", q.SortBy).
		Msg("fetching list")

	go c.run(gen, q)
}

func (c *Controller[T]) run(gen uint64, q Query) {
	ctx := c.ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := c.fetcher.Fetch(ctx, q)
	res := emptyResult[T]()
	if err == nil {
		res, err = Normalize[T](raw, q.PerPage)
	}
	c.reconcile(gen, q, res, err, time.Since(start))
}

func (c *Controller[T]) reconcile(gen uint64, q Query, res Result[T], err error, took time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	stale := c.closed || gen != c.generation
	if c.onReconcile != nil {
		defer c.onReconcile(gen, stale)
	}
	if stale {
		c.logger.Debug().
			Uint64("generation", gen).
			Uint64("current", c.generation).
			Dur("took", took).
			Msg("discarding stale list response")
		return
	}

	switch {
	case errors.Is(err, ErrUnrecognizedEnvelope):
		// Nothing usable came back; show an empty list rather than a
		// page that cannot be trusted.
		c.result = emptyResult[T]()
		c.query.Page = 1
		c.applied = c.query.Clone()
		c.loaded = true
		c.loading = false
		c.failLocked(gen, q, err)

	case err != nil:
		// Keep the rows on display and the query that produced them.
		if c.loaded {
			c.query = c.applied.Clone()
		}
		c.loading = false
		c.failLocked(gen, q, err)

	default:
		if len(res.Items) > q.PerPage {
			if res.Total == len(res.Items) {
				// Every row arrived at once: page through them here.
				res.LastPage = LastPage(res.Total, q.PerPage)
				from := min((q.Page-1)*q.PerPage, len(res.Items))
				res.Items = res.Items[from:min(from+q.PerPage, len(res.Items))]
			} else {
				c.logger.Warn().
					Int("items", len(res.Items)).
					Int("per_page", q.PerPage).
					Msg("list response longer than page size, truncating")
				res.Items = res.Items[:q.PerPage]
			}
		}
		if q.Page > res.LastPage {
			c.logger.Info().
				Int("page", q.Page).
				Int("last_page", res.LastPage).
				Int("total", res.Total).
				Msg("page out of range, clamping")
			// The result on display stays paired with c.applied until the
			// follow-up lands.
			c.query.Page = res.LastPage
			c.fetchLocked("clamp")
			return
		}

		res.CurrentPage = q.Page
		c.result = res
		c.applied = q
		c.loaded = true
		c.loading = false
		c.logger.Debug().
			Uint64("generation", gen).
			Int("items", len(res.Items)).
			Int("total", res.Total).
			Dur("took", took).
			Msg("list response applied")
	}
	c.publishLocked()
}

func (c *Controller[T]) failLocked(gen uint64, q Query, err error) {
	c.logger.Warn().
		Err(err).
		Uint64("generation", gen).
		Int("page", q.Page).
		Msg("list fetch failed")
	offer(c.errs, error(&FetchError{Generation: gen, Query: q, Err: err}))
}

func (c *Controller[T]) publishLocked() {
	if c.closed {
		return
	}
	offer(c.changes, c.snapshotLocked())
}

func (c *Controller[T]) snapshotLocked() State[T] {
	return State[T]{
		Items:     slices.Clone(c.result.Items),
		Total:     c.result.Total,
		Page:      c.query.Page,
		PerPage:   c.query.PerPage,
		LastPage:  c.result.LastPage,
		Search:    c.pending,
		SortBy:    c.query.SortBy,
		SortOrder: c.query.SortOrder,
		Filters:   c.query.Filters.Clone(),
		IsLoading: c.loading,
		Loaded:    c.loaded,
	}
}

// offer puts v on a single-slot channel, replacing an undelivered value.
// Callers hold the controller lock, so they are the only sender.
func offer[V any](ch chan V, v V) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
