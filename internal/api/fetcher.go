package api

import (
	"context"
	"encoding/json"
	"net/url"

	"enrolladmin/internal/listing"
)

// ListFetcher serves one collection endpoint to a list controller
type ListFetcher struct {
	client   *HTTPClient
	endpoint string
}

var _ listing.Fetcher = (*ListFetcher)(nil)

func NewListFetcher(client *HTTPClient, endpoint string) *ListFetcher {
	return &ListFetcher{client: client, endpoint: endpoint}
}

// Fetch returns the raw body of a successful list call
func (f *ListFetcher) Fetch(ctx context.Context, q listing.Query) (json.RawMessage, error) {
	resp, err := f.client.Get(ctx, f.endpoint, EncodeQuery(q))
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	return json.RawMessage(resp.Body), nil
}

// Delete removes one item of the collection
func (f *ListFetcher) Delete(ctx context.Context, id string) error {
	resp, err := f.client.Delete(ctx, f.endpoint+"/"+url.PathEscape(id))
	if err != nil {
		return err
	}
	return resp.Err()
}
