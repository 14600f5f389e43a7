package console

import (
	"context"
	"errors"
	"strconv"
	"strings"
)

var errQuit = errors.New("quit")

const helpText = `commands:
  next | prev            move one page
  page N                 go to page N
  size N                 change page size
  search TEXT            search (debounced); "search" alone clears
  sort COLUMN            cycle asc, desc, unsorted
  filter KEY=VALUE ...   set filters; KEY= removes one
  clear                  reset filters and search
  refresh                reload the current page
  delete ID              delete a row and reload
  help | quit
`

func (s *Screen[T]) execute(ctx context.Context, line string) error {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
	case "next", "n":
		s.ctrl.GoToPage(s.ctrl.State().Page + 1)
	case "prev", "p":
		s.ctrl.GoToPage(s.ctrl.State().Page - 1)
	case "page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			s.printf("! page needs a number\n")
			return nil
		}
		s.ctrl.GoToPage(n)
	case "size":
		n, err := strconv.Atoi(arg)
		if err != nil {
			s.printf("! size needs a number\n")
			return nil
		}
		if err := s.ctrl.ChangePerPage(n); err != nil {
			s.printf("! %s\n", describe(err))
		}
	case "search", "/":
		s.ctrl.HandleSearch(arg)
	case "sort":
		field, err := s.def.SortField(arg)
		if err != nil {
			s.printf("! %s\n", describe(err))
			return nil
		}
		s.ctrl.HandleSort(field)
	case "filter":
		s.filter(arg)
	case "clear":
		s.ctrl.HandleSearch("")
		s.ctrl.SetFilters(s.base)
	case "refresh", "r":
		s.ctrl.Refetch()
	case "delete":
		s.delete(ctx, arg)
	case "help", "?":
		s.printf("%s", helpText)
	case "quit", "exit", "q":
		return errQuit
	default:
		s.printf("! unknown command %q, try help\n", cmd)
	}
	return nil
}

func (s *Screen[T]) filter(arg string) {
	if arg == "" {
		s.printf("! filter needs KEY=VALUE\n")
		return
	}
	next := s.ctrl.Query().Filters
	for _, pair := range strings.Fields(arg) {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			s.printf("! %q is not KEY=VALUE\n", pair)
			return
		}
		if v == "" {
			delete(next, k)
			continue
		}
		next[k] = v
	}

	resolved, err := s.validator.Resolve(next)
	if err != nil {
		s.printf("! %s\n", describe(err))
		return
	}
	// Resolve re-adds screen defaults; a default the user removed stays removed.
	for k := range resolved {
		if _, ok := next[k]; !ok {
			delete(resolved, k)
		}
	}
	s.ctrl.SetFilters(resolved)
}

func (s *Screen[T]) delete(ctx context.Context, id string) {
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		s.printf("! delete needs a numeric id\n")
		return
	}
	if err := s.lister.Delete(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("id", id).Msg("delete failed")
		s.printf("! %s\n", describe(err))
		return
	}
	s.logger.Info().Str("id", id).Msg("row deleted")
	s.printf("deleted %s\n", id)
	s.ctrl.Refetch()
}
