package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	middlewarex "enrolladmin/internal/http/middleware"
	"enrolladmin/internal/resource"
	"enrolladmin/internal/sandbox"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// ListResource serves GET /{resource}. The payload shape is, in order of
// precedence, the client override, the forced envelope, or the resource
// default.
func ListResource(store sandbox.Backend, forced sandbox.Envelope) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typ := resource.Type(chi.URLParam(r, "resource"))

		env, err := envelopeFor(r, typ, forced)
		if err != nil {
			middlewarex.Fail(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		req, err := sandbox.ParseListRequest(r.URL.Query())
		if err != nil {
			writeListError(w, r, typ, err)
			return
		}

		res, err := store.List(r.Context(), typ, req)
		if err != nil {
			writeListError(w, r, typ, err)
			return
		}

		body, err := sandbox.Render(env, res)
		if err != nil {
			log.Error().Err(err).Str("resource", string(typ)).Msg("render list")
			middlewarex.Fail(w, http.StatusInternalServerError, "internal error")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Envelope", string(env))
		_, _ = w.Write(body)
	}
}

// DeleteResource serves DELETE /{resource}/{id}
func DeleteResource(store sandbox.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		typ := resource.Type(chi.URLParam(r, "resource"))
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id < 1 {
			middlewarex.Fail(w, http.StatusUnprocessableEntity, "id must be a positive integer")
			return
		}

		switch err := store.Delete(r.Context(), typ, id); {
		case errors.Is(err, sandbox.ErrUnknownResource):
			middlewarex.Fail(w, http.StatusNotFound, "unknown resource "+string(typ))
		case errors.Is(err, sandbox.ErrNotFound):
			middlewarex.Fail(w, http.StatusNotFound, "record not found")
		case err != nil:
			log.Error().Err(err).Str("path", r.URL.Path).Msg("delete failed")
			middlewarex.Fail(w, http.StatusInternalServerError, "internal error")
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}
}

// Health reports the row count of every resource
func Health(store sandbox.Backend) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts := make(map[resource.Type]int, len(resource.Types))
		for _, t := range resource.Types {
			n, err := store.Count(r.Context(), t)
			if err != nil {
				log.Error().Err(err).Str("resource", string(t)).Msg("health count")
				middlewarex.Fail(w, http.StatusServiceUnavailable, "store unavailable")
				return
			}
			counts[t] = n
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":    "ok",
			"resources": counts,
		})
	}
}

func envelopeFor(r *http.Request, typ resource.Type, forced sandbox.Envelope) (sandbox.Envelope, error) {
	if requested, ok := middlewarex.Envelope(r.Context()); ok {
		return sandbox.ParseEnvelope(requested)
	}
	if forced != "" {
		return forced, nil
	}
	if env, ok := sandbox.DefaultEnvelopes[typ]; ok {
		return env, nil
	}
	return sandbox.Paged, nil
}

func writeListError(w http.ResponseWriter, r *http.Request, typ resource.Type, err error) {
	var verr *sandbox.ValidationError
	switch {
	case errors.As(err, &verr):
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write(sandbox.RenderFailure(verr.Error()))
	case errors.Is(err, sandbox.ErrUnknownResource):
		middlewarex.Fail(w, http.StatusNotFound, "unknown resource "+string(typ))
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("list failed")
		middlewarex.Fail(w, http.StatusInternalServerError, "internal error")
	}
}
