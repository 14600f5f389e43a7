package middlewarex

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const (
	ctxEnvelope ctxKey = "envelope"
)

func WithEnvelope(ctx context.Context, envelope string) context.Context {
	return context.WithValue(ctx, ctxEnvelope, envelope)
}

// Envelope returns the response shape requested by the client, if any
func Envelope(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxEnvelope).(string)
	return v, ok && v != ""
}

// EnvelopeOverride lets a client pick the payload shape with ?envelope= or
// the X-Envelope header.
func EnvelopeOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env := r.URL.Query().Get("envelope")
		if env == "" {
			env = r.Header.Get("X-Envelope")
		}
		if env = strings.ToLower(strings.TrimSpace(env)); env != "" {
			r = r.WithContext(WithEnvelope(r.Context(), env))
		}
		next.ServeHTTP(w, r)
	})
}
