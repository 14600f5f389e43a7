package listing

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecognizedEnvelope means the payload matched none of the known
	// list shapes.
	ErrUnrecognizedEnvelope = errors.New("unrecognized list envelope")

	// ErrPageSizeNotAllowed is returned by ChangePerPage for sizes outside
	// the configured set.
	ErrPageSizeNotAllowed = errors.New("page size not allowed")

	// ErrNilFetcher is returned by New when no fetcher is supplied.
	ErrNilFetcher = errors.New("nil fetcher")
)

// RejectedError is a well-formed `{success: false}` envelope
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "backend rejected the request"
	}
	return "backend rejected the request: " + e.Message
}

// FetchError is published on Controller.Errors for an authoritative fetch
// that failed.
type FetchError struct {
	Generation uint64
	Query      Query
	Err        error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("list fetch (page %d, per page %d): %v", e.Query.Page, e.Query.PerPage, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
