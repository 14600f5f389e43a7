package sandbox

import (
	"encoding/json"
	"fmt"

	"enrolladmin/internal/resource"
)

// Envelope is the payload shape of a list response
type Envelope string

const (
	Bare    Envelope = "bare"    // every matching row as a JSON array
	Paged   Envelope = "paged"   // {data,total,current_page,last_page,per_page}
	Wrapped Envelope = "wrapped" // {success,message,data:<paged>}
)

// DefaultEnvelopes mirrors the mix of shapes the production backend serves
var DefaultEnvelopes = map[resource.Type]Envelope{
	resource.Courses:      Paged,
	resource.Groups:       Wrapped,
	resource.Enrollments:  Paged,
	resource.Participants: Wrapped,
	resource.Invoices:     Paged,
	resource.Users:        Bare,
}

func ParseEnvelope(s string) (Envelope, error) {
	switch e := Envelope(s); e {
	case Bare, Paged, Wrapped:
		return e, nil
	}
	return "", fmt.Errorf("unknown envelope %q", s)
}

type pagedBody struct {
	Data        []json.RawMessage `json:"data"`
	Total       int               `json:"total"`
	CurrentPage int               `json:"current_page"`
	LastPage    int               `json:"last_page"`
	PerPage     int               `json:"per_page"`
}

type wrappedBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Render encodes a list result in the given shape
func Render(e Envelope, res ListResult) ([]byte, error) {
	switch e {
	case Bare:
		return json.Marshal(nonNil(res.All))
	case Paged:
		return json.Marshal(paged(res))
	case Wrapped:
		return json.Marshal(wrappedBody{Success: true, Message: "ok", Data: paged(res)})
	}
	return nil, fmt.Errorf("unknown envelope %q", e)
}

// RenderFailure encodes a backend failure in the wrapped shape
func RenderFailure(message string) []byte {
	b, _ := json.Marshal(wrappedBody{Success: false, Message: message})
	return b
}

func paged(res ListResult) pagedBody {
	return pagedBody{
		Data:        nonNil(res.Items),
		Total:       res.Total,
		CurrentPage: res.Page,
		LastPage:    res.LastPage,
		PerPage:     res.PerPage,
	}
}

func nonNil(rows []json.RawMessage) []json.RawMessage {
	if rows == nil {
		return []json.RawMessage{}
	}
	return rows
}
