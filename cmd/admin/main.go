package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"enrolladmin/internal/api"
	"enrolladmin/internal/config"
	"enrolladmin/internal/console"
	"enrolladmin/internal/listing"
	"enrolladmin/internal/logging"
	"enrolladmin/internal/resource"

	"github.com/rs/zerolog/log"
)

func main() {
	var (
		screenName = flag.String("screen", "courses", "list screen to open")
		listOnly   = flag.Bool("list", false, "print the available screens and exit")
		search     = flag.String("search", "", "initial search text")
		filters    = listing.Filters{}
	)
	flag.Func("filter", "initial filter KEY=VALUE (repeatable)", func(s string) error {
		k, v, ok := strings.Cut(s, "=")
		if !ok || k == "" {
			return fmt.Errorf("%q is not KEY=VALUE", s)
		}
		filters[k] = v
		return nil
	})
	flag.Parse()

	registry := resource.NewDefaultRegistry()
	if *listOnly {
		for _, s := range registry.List() {
			fmt.Printf("%-24s %-14s %s\n", s.Name, s.Endpoint, s.Title)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	cfg.Log.Output = "file" // stdout is the UI
	closer, err := logging.Setup(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := run(cfg, registry, *screenName, *search, filters); err != nil {
		log.Error().Err(err).Msg("admin console failed")
		fmt.Fprintln(os.Stderr, "error:", err)
		closer.Close()
		os.Exit(1)
	}
}

func run(cfg config.Cfg, registry *resource.Registry, name, search string, filters listing.Filters) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	def, err := registry.Get(name)
	if err != nil {
		return err
	}

	client := api.NewHTTPClient(cfg.API.BaseURL, cfg.API.Token, cfg.API.Timeout())
	if err := api.WaitReady(ctx, client, cfg.API.ReadyWait()); err != nil {
		return fmt.Errorf("api at %s not ready: %w", client.BaseURL(), err)
	}

	screen, err := console.Open(def, api.NewListFetcher(client, def.Endpoint), filters, listing.Options{
		PerPage:      cfg.List.DefaultPerPage,
		PageSizes:    cfg.List.PageSizes,
		Search:       search,
		Debounce:     cfg.List.Debounce(),
		FetchTimeout: cfg.List.FetchTimeout(),
	})
	if err != nil {
		return err
	}

	log.Info().Str("screen", def.Name).Str("api", client.BaseURL()).Msg("admin console started")
	fmt.Printf("%s (type help for commands)\n", def.Title)
	if err := screen.Run(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
