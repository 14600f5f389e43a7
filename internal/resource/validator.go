package resource

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"enrolladmin/internal/listing"
)

const maxTextFilter = 100

// FilterValidator checks caller filters against one screen
type FilterValidator struct {
	screen Screen
}

func NewFilterValidator(s Screen) *FilterValidator {
	return &FilterValidator{screen: s}
}

// Validate rejects unknown keys and malformed values. Empty values are
// allowed, they are dropped on the wire.
func (v *FilterValidator) Validate(filters listing.Filters) error {
	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		value := strings.TrimSpace(filters[key])
		f, ok := v.screen.Filter(key)
		if !ok {
			return &Error{
				Code:    ErrUnknownFilter,
				Message: fmt.Sprintf("unknown filter %s for %s", key, v.screen.Name),
			}
		}
		if value == "" {
			continue
		}
		if err := validateValue(f, value); err != nil {
			return err
		}
	}
	return nil
}

// Resolve merges the screen defaults under filters, validates the result
// and checks that every required filter has a value.
func (v *FilterValidator) Resolve(filters listing.Filters) (listing.Filters, error) {
	out := v.screen.Defaults.Clone()
	for k, val := range filters {
		out[k] = strings.TrimSpace(val)
	}
	if err := v.Validate(out); err != nil {
		return nil, err
	}
	for _, key := range v.screen.Required {
		if out[key] == "" {
			return nil, &Error{
				Code:    ErrMissingFilter,
				Message: fmt.Sprintf("%s requires filter %s", v.screen.Name, key),
			}
		}
	}
	return out, nil
}

func validateValue(f Filter, value string) error {
	switch f.Kind {
	case FilterID:
		if n, err := strconv.ParseInt(value, 10, 64); err != nil || n < 1 {
			return &Error{Code: ErrInvalidFilter, Message: fmt.Sprintf("%s must be a positive integer", f.Key)}
		}
	case FilterEnum:
		if !slices.Contains(f.Values, value) {
			return &Error{
				Code:    ErrInvalidFilter,
				Message: fmt.Sprintf("%s must be one of: %s", f.Key, strings.Join(f.Values, ", ")),
			}
		}
	case FilterDate:
		if _, err := time.Parse(time.DateOnly, value); err != nil {
			return &Error{Code: ErrInvalidFilter, Message: fmt.Sprintf("%s must be a date (YYYY-MM-DD)", f.Key)}
		}
	case FilterText:
		if utf8.RuneCountInString(value) > maxTextFilter {
			return &Error{Code: ErrInvalidFilter, Message: fmt.Sprintf("%s must be at most %d characters", f.Key, maxTextFilter)}
		}
	}
	return nil
}
