// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

// Package metrics provides Prometheus instrumentation for the API
// surface, the completion provider, the TMDB resolver, and the
// conversation session store.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	// Completion provider metrics
	CompletionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "completion_requests_total",
			Help: "Total number of completion provider calls",
		},
		[]string{"outcome"}, // "success", "error"
	)

	CompletionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "completion_request_duration_seconds",
			Help:    "Completion provider round-trip duration in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 40, 60},
		},
	)

	MalformedCompletions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "completion_malformed_responses_total",
			Help: "Completions that failed strict JSON parsing",
		},
	)

	// TMDB resolver metrics
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmdb_resolutions_total",
			Help: "Total number of metadata resolution attempts",
		},
		[]string{"outcome"}, // "resolved", "not_found", "error"
	)

	ResolutionCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tmdb_resolution_cache_hits_total",
			Help: "Resolution lookups served from the TTL cache",
		},
	)

	// Conversation session metrics
	SessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "conversation_sessions_started_total",
			Help: "Total number of conversation sessions started",
		},
	)

	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "conversation_sessions_active",
			Help: "Current number of live conversation sessions",
		},
	)

	SessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "conversation_sessions_expired_total",
			Help: "Sessions removed by the TTL janitor",
		},
	)

	// Circuit breaker metrics, shared by the TMDB and completion breakers
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Requests routed through a circuit breaker",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)
)
