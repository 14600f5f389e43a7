package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"enrolladmin/internal/config"
	httpx "enrolladmin/internal/http"
	"enrolladmin/internal/logging"
	"enrolladmin/internal/resource"
	"enrolladmin/internal/sandbox"
	"enrolladmin/internal/store/postgres"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		log.Fatal().Err(err).Msg("logger setup failed")
	}
	defer closer.Close()

	ctx := context.Background()
	store, cleanup, err := openBackend(ctx, cfg.Sandbox)
	if err != nil {
		log.Fatal().Err(err).Msg("sandbox backend")
	}
	defer cleanup()
	for _, t := range resource.Types {
		n, err := store.Count(ctx, t)
		if err != nil {
			log.Fatal().Err(err).Str("resource", string(t)).Msg("count rows")
		}
		log.Debug().Str("resource", string(t)).Int("rows", n).Msg("seeded")
	}

	r := httpx.NewRouter(httpx.RouterDependencies{Config: cfg.Sandbox, Store: store})

	srv := &http.Server{
		Addr:         ":" + cfg.Sandbox.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().
			Str("env", cfg.App.Env).
			Str("envelope", cfg.Sandbox.Envelope).
			Bool("postgres", cfg.Sandbox.DatabaseURL != "").
			Int("latency_ms", cfg.Sandbox.LatencyMs).
			Msgf("sandbox API listening on :%s", cfg.Sandbox.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info().Msg("server stopped")
}

// openBackend keeps the rows in memory unless a database is configured
func openBackend(ctx context.Context, cfg config.SandboxCfg) (sandbox.Backend, func(), error) {
	if cfg.DatabaseURL == "" {
		return sandbox.NewStore(cfg.Seed), func() {}, nil
	}

	pool, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	recs := postgres.NewRecords(pool)
	if err := recs.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	if _, err := recs.Seed(ctx, cfg.Seed); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return recs, pool.Close, nil
}
