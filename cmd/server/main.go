// Theatrum - Streaming Front-End View-State Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/theatrum

// Command server runs the Theatrum view-state engine: a durable
// session, watchlist, rating, and watch-time model behind an HTTP and
// WebSocket API.
//
// Startup order matters: configuration, then logging, then the state
// store, then the controller, and finally the supervision tree that
// owns the accumulator, the WebSocket hub, and the HTTP server. The
// store closes last so every shutdown flush lands on disk.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/theatrum/internal/api"
	"github.com/tomtom215/theatrum/internal/catalog"
	"github.com/tomtom215/theatrum/internal/config"
	"github.com/tomtom215/theatrum/internal/logging"
	"github.com/tomtom215/theatrum/internal/store"
	"github.com/tomtom215/theatrum/internal/supervisor"
	"github.com/tomtom215/theatrum/internal/supervisor/services"
	"github.com/tomtom215/theatrum/internal/viewstate"
	"github.com/tomtom215/theatrum/internal/watchtime"
	"github.com/tomtom215/theatrum/internal/websocket"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)).
		Bool("in_memory", cfg.Storage.InMemory).
		Msg("Theatrum starting")

	st, err := store.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open state store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logging.Error().Err(cerr).Msg("Failed to close state store")
		}
	}()

	cat := catalog.New()
	hub := websocket.NewHub()

	controller := viewstate.New(cat, st,
		cfg.Session.PasswordHash, cfg.Session.Restore,
		viewstate.WithEvents(hub),
	)
	accumulator := watchtime.New(controller, cfg.WatchTime)

	router := api.NewRouter(controller, hub, cfg.API)
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddStateService(accumulator)
	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	errCh := tree.ServeBackground(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		cancel()
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("supervision tree failed: %w", err)
		}
	}

	// Wait for the tree to wind down, then report anything stuck.
	select {
	case <-errCh:
	case <-time.After(cfg.Server.ShutdownTimeout + 5*time.Second):
		if report, rerr := tree.UnstoppedServiceReport(); rerr == nil {
			for _, svc := range report {
				logging.Warn().
					Str("service", svc.Name).
					Msg("Service did not stop within shutdown window")
			}
		}
	}

	// Final synchronous flush so the last accrued watch time survives.
	controller.Flush()

	logging.Info().Msg("Theatrum stopped")
	return nil
}
