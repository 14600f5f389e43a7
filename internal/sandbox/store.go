package sandbox

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"sync"

	"enrolladmin/internal/resource"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
)

var (
	ErrUnknownResource = errors.New("unknown resource")
	ErrNotFound        = errors.New("record not found")
)

type record struct {
	id     int64
	raw    json.RawMessage
	search string
}

// ListResult is one page of a resource plus every row that matched
type ListResult struct {
	Items    []json.RawMessage
	All      []json.RawMessage
	Total    int
	Page     int
	PerPage  int
	LastPage int
}

// Store is an in-memory backend for the six resources
type Store struct {
	mu   sync.RWMutex
	rows map[resource.Type][]record
}

var _ Backend = (*Store)(nil)

// NewStore seeds a store deterministically from seed
func NewStore(seed int64) *Store {
	data, err := Generate(seed)
	if err != nil {
		panic(err) // generated rows always marshal
	}
	s := &Store{rows: make(map[resource.Type][]record, len(data))}
	for t, rows := range data {
		records := make([]record, 0, len(rows))
		for _, raw := range rows {
			records = append(records, record{
				id:     gjson.GetBytes(raw, "id").Int(),
				raw:    raw,
				search: SearchText(t, raw),
			})
		}
		s.rows[t] = records
	}
	log.Debug().Int64("seed", seed).Msg("sandbox store seeded")
	return s
}

// Count returns the number of rows of a resource
func (s *Store) Count(_ context.Context, t resource.Type) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.rows[t]
	if !ok {
		return 0, ErrUnknownResource
	}
	return len(rows), nil
}

// List searches, filters, sorts and paginates one resource
func (s *Store) List(_ context.Context, t resource.Type, req ListRequest) (ListResult, error) {
	if err := CheckRequest(t, req); err != nil {
		return ListResult{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := s.rows[t]
	needle := strings.ToLower(req.Search)
	matched := make([]record, 0, len(rows))
	for _, r := range rows {
		if needle != "" && !strings.Contains(r.search, needle) {
			continue
		}
		if !matches(r, req.Filters) {
			continue
		}
		matched = append(matched, r)
	}

	if req.SortBy != "" {
		desc := req.SortOrder == "desc"
		slices.SortStableFunc(matched, func(a, b record) int {
			c := compareField(a.raw, b.raw, req.SortBy)
			if desc {
				c = -c
			}
			if c == 0 {
				return cmp.Compare(a.id, b.id)
			}
			return c
		})
	}

	all := make([]json.RawMessage, len(matched))
	for i, r := range matched {
		all[i] = r.raw
	}
	return Paginate(all, req), nil
}

// Delete removes one row by id
func (s *Store) Delete(_ context.Context, t resource.Type, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, ok := s.rows[t]
	if !ok {
		return ErrUnknownResource
	}
	i := slices.IndexFunc(rows, func(r record) bool { return r.id == id })
	if i < 0 {
		return ErrNotFound
	}
	s.rows[t] = slices.Delete(rows, i, i+1)
	log.Info().Str("resource", string(t)).Int64("id", id).Msg("sandbox record deleted")
	return nil
}

func matches(r record, filters map[string]string) bool {
	for k, want := range filters {
		if field, before, ok := RangeFilter(k); ok {
			got := gjson.GetBytes(r.raw, field).String()
			if before && !(got < want) || !before && got < want {
				return false
			}
			continue
		}
		if gjson.GetBytes(r.raw, k).String() != want {
			return false
		}
	}
	return true
}

// compareField orders numbers numerically, decimal strings by value, other
// strings case-insensitively. Missing and null values sort first.
func compareField(a, b json.RawMessage, field string) int {
	va, vb := gjson.GetBytes(a, field), gjson.GetBytes(b, field)
	na, nb := va.Type == gjson.Null, vb.Type == gjson.Null
	switch {
	case na && nb:
		return 0
	case na:
		return -1
	case nb:
		return 1
	}
	if va.Type == gjson.Number && vb.Type == gjson.Number {
		return cmp.Compare(va.Num, vb.Num)
	}
	if da, err := decimal.NewFromString(va.String()); err == nil {
		if db, err := decimal.NewFromString(vb.String()); err == nil {
			return da.Cmp(db)
		}
	}
	return strings.Compare(strings.ToLower(va.String()), strings.ToLower(vb.String()))
}
