// Package console is a line-oriented terminal front end for one list
// screen. It is the reference consumer of listing.Controller: every command
// maps onto one controller mutator and every state change re-renders the
// table.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"

	"enrolladmin/internal/listing"
	"enrolladmin/internal/resource"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Row is a list item that can render its own cells
type Row interface {
	Cell(column string) string
}

// Lister is the backend of one screen
type Lister interface {
	listing.Fetcher
	Delete(ctx context.Context, id string) error
}

// Runner is a screen ready to be driven by a terminal
type Runner interface {
	Run(ctx context.Context, in io.Reader, out io.Writer) error
}

// Screen binds a list controller to a screen definition
type Screen[T Row] struct {
	def       resource.Screen
	lister    Lister
	validator *resource.FilterValidator
	base      listing.Filters
	ctrl      *listing.Controller[T]
	logger    zerolog.Logger

	mu  sync.Mutex // serializes writes to out
	out io.Writer
}

// NewScreen validates filters against def and creates the controller
func NewScreen[T Row](def resource.Screen, lister Lister, filters listing.Filters, opts listing.Options) (*Screen[T], error) {
	v := resource.NewFilterValidator(def)
	base, err := v.Resolve(filters)
	if err != nil {
		return nil, err
	}

	opts.Filters = base

	ctrl, err := listing.New[T](lister, opts)
	if err != nil {
		return nil, err
	}
	return &Screen[T]{
		def:       def,
		lister:    lister,
		validator: v,
		base:      base,
		ctrl:      ctrl,
		logger:    log.With().Str("component", "console").Str("screen", def.Name).Logger(),
	}, nil
}

// Controller exposes the underlying list controller
func (s *Screen[T]) Controller() *listing.Controller[T] {
	return s.ctrl
}

// Run loads the first page and executes commands read from in until quit,
// EOF or ctx is done. The controller is closed on return.
func (s *Screen[T]) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	s.out = out
	defer s.ctrl.Close()

	rendered := make(chan struct{})
	go func() {
		defer close(rendered)
		s.renderLoop()
	}()

	done := make(chan struct{})
	defer close(done)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		readErr <- sc.Err()
		close(lines)
	}()

	s.logger.Info().Msg("screen opened")
	s.ctrl.Load()

	var err error
loop:
	for {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break loop
		case line, ok := <-lines:
			if !ok {
				err = <-readErr
				break loop
			}
			if s.execute(ctx, line) == errQuit {
				break loop
			}
		}
	}

	s.ctrl.Close()
	<-rendered
	s.logger.Info().Msg("screen closed")
	return err
}

func (s *Screen[T]) renderLoop() {
	changes, errs := s.ctrl.Changes(), s.ctrl.Errors()
	for changes != nil || errs != nil {
		select {
		case st, ok := <-changes:
			if !ok {
				changes = nil
				continue
			}
			s.write(func(w io.Writer) { renderState(w, s.def, st) })
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			s.printf("! %s\n", describe(err))
		}
	}
}

func (s *Screen[T]) write(fn func(w io.Writer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.out)
}

func (s *Screen[T]) printf(format string, args ...any) {
	s.write(func(w io.Writer) { fmt.Fprintf(w, format, args...) })
}
