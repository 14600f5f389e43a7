package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

// Error codes
const (
	CodeTransport    = "transport"
	CodeHTTPStatus   = "http_status"
	CodeValidation   = "validation_failed"
	CodeUnauthorized = "unauthorized"
	CodeNotFound     = "not_found"
)

// Error is any failed call to the API. Status is 0 for transport errors.
type Error struct {
	Code    string `json:"code"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	msg := e.Message
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.Status)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errorFromResponse(r *Response) *Error {
	e := &Error{Status: r.StatusCode}
	switch {
	case r.StatusCode == http.StatusUnprocessableEntity || r.StatusCode == http.StatusBadRequest:
		e.Code = CodeValidation
	case r.StatusCode == http.StatusUnauthorized || r.StatusCode == http.StatusForbidden:
		e.Code = CodeUnauthorized
	case r.StatusCode == http.StatusNotFound:
		e.Code = CodeNotFound
	default:
		e.Code = CodeHTTPStatus
	}

	if gjson.ValidBytes(r.Body) {
		if m := gjson.GetBytes(r.Body, "message"); m.Type == gjson.String {
			e.Message = strings.TrimSpace(m.Str)
		}
	}
	if e.Message == "" {
		e.Message = strings.ToLower(http.StatusText(r.StatusCode))
	}
	if e.Message == "" {
		e.Message = "unexpected response"
	}
	return e
}
