// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

// Package main is the entry point for the film recommendations server.
//
// The server turns free-text prompts into concrete movie and TV
// recommendations. An LLM proposes titles, TMDB resolves them into real
// catalog entries, and conversational sessions let a client refine the
// working set over multiple rounds (more prompts, exclusions, likes).
//
// # Application Architecture
//
// Components are initialized in order:
//
//  1. Configuration: defaults, optional YAML file, environment (koanf v2)
//  2. TMDB client: rate-limited, circuit-broken, response-cached resolver
//  3. Completion provider: OpenAI Responses API behind a circuit breaker
//  4. Session store: in-memory or BadgerDB, with sliding TTL expiry
//  5. Watchlist store: in-memory or BadgerDB
//  6. Authentication: JWT bearer tokens or open mode
//  7. Supervisor tree: HTTP server plus session janitor under suture
//
// # Configuration
//
// Highest priority wins:
//   - Environment variables (OPENAI_API_KEY, TMDB_API_KEY, SESSIONS_TTL, ...)
//   - Config file (config.yaml, or CONFIG_PATH)
//   - Built-in defaults
//
// Required settings: OPENAI_API_KEY and TMDB_API_KEY. For JWT auth:
//   - SECURITY_JWT_SECRET: 32+ character signing secret
//   - SECURITY_ADMIN_USERNAME / SECURITY_ADMIN_PASSWORD_HASH (bcrypt)
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the HTTP server stops
// accepting connections, in-flight requests drain within the shutdown
// timeout, then stores are closed.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gabrielvik/film-recommendations/internal/api"
	"github.com/gabrielvik/film-recommendations/internal/auth"
	"github.com/gabrielvik/film-recommendations/internal/completion"
	"github.com/gabrielvik/film-recommendations/internal/config"
	"github.com/gabrielvik/film-recommendations/internal/conversation"
	"github.com/gabrielvik/film-recommendations/internal/logging"
	"github.com/gabrielvik/film-recommendations/internal/recommend"
	"github.com/gabrielvik/film-recommendations/internal/supervisor"
	"github.com/gabrielvik/film-recommendations/internal/supervisor/services"
	"github.com/gabrielvik/film-recommendations/internal/tmdb"
	"github.com/gabrielvik/film-recommendations/internal/watchlist"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	// Load configuration first to get logging settings.
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
		Str("version", version).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("session_store", cfg.Sessions.Store).
		Str("model", cfg.OpenAI.Model).
		Msg("Starting film recommendations server")

	// Metadata resolver: TMDB client wrapped in a circuit breaker, then
	// a response cache. The cache sits outermost so cached hits never
	// count against the breaker.
	tmdbClient := tmdb.NewClient(&cfg.TMDB)
	resolver := tmdb.NewCachedResolver(tmdb.NewBreakerResolver(tmdbClient), cfg.TMDB.CacheTTL)
	defer resolver.Close()

	// Completion provider behind its own breaker.
	provider := completion.NewBreakerProvider(completion.NewOpenAIProvider(&cfg.OpenAI))

	aggregator := recommend.NewAggregator(provider, resolver)

	sessionStore, err := conversation.NewStore(&cfg.Sessions)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize session store")
	}
	defer func() {
		if err := sessionStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing session store")
		}
	}()

	orchestrator := conversation.NewOrchestrator(sessionStore, aggregator)

	watchlistStore, err := watchlist.NewStore(&cfg.Watchlist)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize watchlist store")
	}
	defer func() {
		if err := watchlistStore.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing watchlist store")
		}
	}()

	// JWT manager and credential verifier are only needed in jwt mode.
	var jwtManager *auth.JWTManager
	var verifier *auth.Verifier
	if cfg.Security.AuthMode == "jwt" {
		jwtManager, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
		}
		verifier = auth.NewVerifier(&cfg.Security)
	}
	authMW := auth.NewMiddleware(&cfg.Security, jwtManager)

	handler := api.NewHandler(cfg, orchestrator, aggregator, resolver,
		watchlistStore, verifier, jwtManager, version)
	router := api.NewRouter(handler, authMW, &cfg.Security)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// sutureslog needs an slog.Logger; the adapter bridges to zerolog.
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	tree.AddMaintenanceService(services.NewJanitorService(sessionStore, cfg.Sessions.CleanupInterval))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain the error channel; it closes when the supervisor is done.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Server stopped gracefully")
}
