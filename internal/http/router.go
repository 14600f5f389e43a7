package httpx

import (
	"net/http"

	"enrolladmin/internal/config"
	"enrolladmin/internal/http/handlers"
	middlewarex "enrolladmin/internal/http/middleware"
	"enrolladmin/internal/sandbox"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RouterDependencies holds all dependencies for the HTTP router
type RouterDependencies struct {
	Config config.SandboxCfg
	Store  sandbox.Backend
}

// NewRouter creates the sandbox API router
func NewRouter(deps RouterDependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(middlewarex.RequestLogger)
	r.Use(chimw.Recoverer)

	health := handlers.Health(deps.Store)
	r.Get("/health", health)

	forced := sandbox.Envelope(deps.Config.Envelope)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", health)

		r.Group(func(r chi.Router) {
			r.Use(middlewarex.BearerAuth(deps.Config.Token))
			r.Use(middlewarex.RateLimit(deps.Config.RateLimitPerMin))
			r.Use(middlewarex.Latency(deps.Config.Latency()))
			r.Use(middlewarex.EnvelopeOverride)

			r.Get("/{resource}", handlers.ListResource(deps.Store, forced))
			r.Delete("/{resource}/{id}", handlers.DeleteResource(deps.Store))
		})
	})

	return r
}
