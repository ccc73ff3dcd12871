// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gabrielvik/film-recommendations/internal/auth"
	"github.com/gabrielvik/film-recommendations/internal/config"
	"github.com/gabrielvik/film-recommendations/internal/middleware"
)

// NewRouter builds the chi router with the full middleware stack and
// all routes.
func NewRouter(h *Handler, authMW *auth.Middleware, cfg *config.SecurityConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(90 * time.Second))
	r.Use(corsMiddleware(cfg))

	if !cfg.RateLimitDisabled {
		r.Use(httprate.Limit(
			cfg.RateLimitReqs,
			cfg.RateLimitWindow,
			httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint),
		))
	}

	// Unauthenticated surface.
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Login stays outside the bearer check.
		if cfg.AuthMode == "jwt" {
			r.Post("/auth/login", h.Login)
		}

		// Data surface, authenticated when a mode is configured.
		r.Group(func(r chi.Router) {
			r.Use(authMW.Authenticate)

			r.Route("/conversations", func(r chi.Router) {
				r.Post("/", h.StartConversation)
				r.Get("/{sessionID}", h.GetConversation)
				r.Post("/{sessionID}/prompts", h.ContinueConversation)
				r.Post("/{sessionID}/exclusions", h.ExcludeMovie)
				r.Post("/{sessionID}/likes", h.LikeMovie)
			})

			r.Post("/recommendations", h.Recommend)
			r.Get("/movies/{id}", h.GetMovie)

			r.Route("/watchlist", func(r chi.Router) {
				r.Get("/", h.ListWatchlist)
				r.Post("/", h.AddToWatchlist)
				r.Delete("/{movieID}", h.RemoveFromWatchlist)
			})
		})
	})

	return r
}

func corsMiddleware(cfg *config.SecurityConfig) func(http.Handler) http.Handler {
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
