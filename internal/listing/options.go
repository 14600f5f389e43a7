package listing

import (
	"fmt"
	"slices"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	DefaultDebounce = 400 * time.Millisecond
	DefaultPerPage  = 10
)

// DefaultPageSizes is used when Options.PageSizes is empty
var DefaultPageSizes = []int{10, 25, 50, 100}

// Options configures a Controller. Zero values fall back to the defaults.
type Options struct {
	PerPage   int
	PageSizes []int
	Filters   Filters

	// Search and SortBy/SortOrder seed the initial query
	Search    string
	SortBy    string
	SortOrder SortOrder

	Debounce time.Duration

	// FetchTimeout bounds a single fetch; 0 leaves it to the transport.
	FetchTimeout time.Duration

	Clock  clockwork.Clock
	Logger *zerolog.Logger
}

func (o Options) withDefaults() (Options, error) {
	if len(o.PageSizes) == 0 {
		o.PageSizes = DefaultPageSizes
	}
	o.PageSizes = slices.Clone(o.PageSizes)
	for _, s := range o.PageSizes {
		if s < 1 {
			return o, fmt.Errorf("listing: invalid page size %d", s)
		}
	}
	if o.PerPage == 0 {
		o.PerPage = DefaultPerPage
		if !slices.Contains(o.PageSizes, o.PerPage) {
			o.PerPage = o.PageSizes[0]
		}
	}
	if !slices.Contains(o.PageSizes, o.PerPage) {
		return o, fmt.Errorf("listing: per page %d: %w", o.PerPage, ErrPageSizeNotAllowed)
	}
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.SortBy == "" {
		o.SortOrder = ""
	} else if o.SortOrder != Descending {
		o.SortOrder = Ascending
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	if o.Logger == nil {
		l := log.With().Str("component", "listing").Logger()
		o.Logger = &l
	}
	return o, nil
}
