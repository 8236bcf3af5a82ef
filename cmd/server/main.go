// Trustgraph - Social Trust Propagation and Reward Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/trustgraph

// Package main is the entry point for the trustgraph server.
//
// Trustgraph computes personalized trust scores for content by
// propagating endorsements through a depth-limited social graph, and
// issues idempotent token rewards weighted by social proof.
//
// The server initializes, in order:
//
//  1. Configuration: Koanf v2 layered sources (defaults, YAML, env)
//  2. Logging: zerolog global logger
//  3. Reward ledger: BadgerDB, durable or in-memory
//  4. Store, event bus, trust engine, reward calculator
//  5. Invalidation router: change events drive cache eviction
//  6. HTTP server: chi router with the REST API and /metrics
//
// All components run under a suture supervision tree and shut down
// gracefully on SIGINT and SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/trustgraph/internal/api"
	"github.com/tomtom215/trustgraph/internal/config"
	"github.com/tomtom215/trustgraph/internal/events"
	"github.com/tomtom215/trustgraph/internal/logging"
	"github.com/tomtom215/trustgraph/internal/reward"
	"github.com/tomtom215/trustgraph/internal/store"
	"github.com/tomtom215/trustgraph/internal/supervisor"
	"github.com/tomtom215/trustgraph/internal/trust"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Int("cache_capacity", cfg.Trust.CacheCapacity).
		Str("ledger_path", cfg.Reward.LedgerPath).
		Msg("Starting trustgraph")

	ledger, err := reward.NewBadgerLedger(cfg.Reward.LedgerPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open reward ledger")
	}
	defer func() {
		if err := ledger.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing reward ledger")
		}
	}()

	logger := logging.Logger()
	bus := events.NewBus(logger)
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	st := store.New(bus, logger)
	engine := trust.NewEngine(st, trust.EngineConfig{
		CacheCapacity: cfg.Trust.CacheCapacity,
	}, logger)
	rewards := reward.NewCalculator(st, st, ledger, logger)

	invalidation, err := events.NewInvalidationRouter(bus, engine)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to build invalidation router")
	}

	handler := api.NewHandler(st, engine, rewards, bus, cfg.Reward.DefaultBaseReward, logger)
	router := api.NewRouter(handler, api.RouterConfig{
		RateLimitRequests: cfg.API.RateLimitRequests,
		RateLimitWindow:   cfg.API.RateLimitWindow,
		CORSOrigins:       cfg.API.CORSOrigins,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)

	tree.AddDataService(supervisor.NewLedgerGCService(ledger, 0, logger))
	tree.AddMessagingService(supervisor.NewRouterService(invalidation))
	tree.AddAPIService(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Trustgraph stopped gracefully")
}
