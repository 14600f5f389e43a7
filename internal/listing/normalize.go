package listing

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Normalize unwraps a list payload into a Result. Three shapes are accepted:
//
//	[ ...rows ]
//	{ "data": [...], "total": N, "current_page": P, "last_page": L, "per_page": S }
//	{ "success": true, "message": "...", "data": <either of the above> }
//
// A bare array is a single complete page. LastPage is always derived from
// total and perPage; the backend's own last_page is ignored.
func Normalize[T any](raw []byte, perPage int) (Result[T], error) {
	if !gjson.ValidBytes(raw) {
		return emptyResult[T](), fmt.Errorf("%w: invalid json", ErrUnrecognizedEnvelope)
	}
	return normalizeValue[T](gjson.ParseBytes(raw), perPage, true)
}

func normalizeValue[T any](v gjson.Result, perPage int, unwrap bool) (Result[T], error) {
	switch {
	case v.IsArray():
		items, err := decodeItems[T](v)
		if err != nil {
			return emptyResult[T](), err
		}
		return Result[T]{Items: items, Total: len(items), CurrentPage: 1, LastPage: 1}, nil

	case v.IsObject():
		if success := v.Get("success"); unwrap && success.Exists() {
			if !success.Bool() {
				return emptyResult[T](), &RejectedError{Message: v.Get("message").String()}
			}
			data := v.Get("data")
			if !data.Exists() || data.Type == gjson.Null {
				return emptyResult[T](), nil
			}
			return normalizeValue[T](data, perPage, false)
		}

		data := v.Get("data")
		if !data.IsArray() && !(data.Exists() && data.Type == gjson.Null && v.Get("total").Exists()) {
			break
		}
		items, err := decodeItems[T](data)
		if err != nil {
			return emptyResult[T](), err
		}
		total := intField(v, "total", len(items))
		if total < len(items) {
			total = len(items)
		}
		return Result[T]{
			Items:       items,
			Total:       total,
			CurrentPage: max(intField(v, "current_page", 1), 1),
			LastPage:    LastPage(total, perPage),
		}, nil
	}
	return emptyResult[T](), fmt.Errorf("%w: unexpected %s payload", ErrUnrecognizedEnvelope, kind(v))
}

func decodeItems[T any](v gjson.Result) ([]T, error) {
	items := []T{}
	if v.Type == gjson.Null {
		return items, nil
	}
	if err := json.Unmarshal([]byte(v.Raw), &items); err != nil {
		return nil, fmt.Errorf("%w: decode rows: %v", ErrUnrecognizedEnvelope, err)
	}
	return items, nil
}

// intField reads a numeric field that some endpoints serialize as a string
func intField(v gjson.Result, key string, def int) int {
	f := v.Get(key)
	switch f.Type {
	case gjson.Number:
		return int(f.Int())
	case gjson.String:
		if n, err := strconv.Atoi(strings.TrimSpace(f.Str)); err == nil {
			return n
		}
	}
	return def
}

func kind(v gjson.Result) string {
	switch {
	case v.IsObject():
		return "object"
	case v.IsArray():
		return "array"
	}
	return strings.ToLower(v.Type.String())
}
