package listing

import (
	"context"
	"encoding/json"
)

// Fetcher issues one list request and returns the raw payload. It does not
// need to support cancellation of superseded requests: the controller drops
// their results by generation instead.
type Fetcher interface {
	Fetch(ctx context.Context, q Query) (json.RawMessage, error)
}

// FetcherFunc adapts a plain function to Fetcher
type FetcherFunc func(ctx context.Context, q Query) (json.RawMessage, error)

func (f FetcherFunc) Fetch(ctx context.Context, q Query) (json.RawMessage, error) {
	return f(ctx, q)
}
