// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package tmdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/gabrielvik/film-recommendations/internal/logging"
	"github.com/gabrielvik/film-recommendations/internal/metrics"
	"github.com/gabrielvik/film-recommendations/internal/models"
)

// BreakerResolver wraps a Resolver with circuit breaker protection so a
// TMDB outage fails fast instead of stalling every recommendation
// request on timeouts.
//
// The breaker uses real time for its interval and timeout calculations.
// Tests should exercise the wrapped resolver directly.
type BreakerResolver struct {
	inner Resolver
	cb    *gobreaker.CircuitBreaker[interface{}]
	name  string
}

// NewBreakerResolver creates a circuit-breaking resolver.
// The circuit opens after a 60% failure rate over at least 10 requests,
// stays open for 2 minutes, then admits up to 3 probe requests.
func NewBreakerResolver(inner Resolver) *BreakerResolver {
	const cbName = "tmdb-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= 0.6
			if shouldTrip {
				logging.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening TMDB circuit")
			}
			return shouldTrip
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("from", breakerStateString(from)).
				Str("to", breakerStateString(to)).
				Msg("[CIRCUIT BREAKER] TMDB state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateFloat(to))
		},
	})

	return &BreakerResolver{inner: inner, cb: cb, name: cbName}
}

func (b *BreakerResolver) ResolveMovie(ctx context.Context, title string, year int) (Resolution, error) {
	result, err := b.execute(func() (interface{}, error) {
		return b.inner.ResolveMovie(ctx, title, year)
	})
	if err != nil {
		return Resolution{}, err
	}
	res, ok := result.(Resolution)
	if !ok {
		return Resolution{}, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return res, nil
}

func (b *BreakerResolver) ResolveSeries(ctx context.Context, title string, year int) (Resolution, error) {
	result, err := b.execute(func() (interface{}, error) {
		return b.inner.ResolveSeries(ctx, title, year)
	})
	if err != nil {
		return Resolution{}, err
	}
	res, ok := result.(Resolution)
	if !ok {
		return Resolution{}, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return res, nil
}

func (b *BreakerResolver) MovieDetails(ctx context.Context, id int) (*models.MovieDetails, error) {
	result, err := b.execute(func() (interface{}, error) {
		return b.inner.MovieDetails(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	details, ok := result.(*models.MovieDetails)
	if !ok {
		return nil, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return details, nil
}

func (b *BreakerResolver) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			logging.Warn().Err(err).Msg("[CIRCUIT BREAKER] TMDB request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		}
		return nil, err
	}
	metrics.CircuitBreakerRequests.WithLabelValues(b.name, "success").Inc()
	return result, nil
}

func breakerStateFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func breakerStateString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
