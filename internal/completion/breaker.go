// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package completion

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/gabrielvik/film-recommendations/internal/logging"
	"github.com/gabrielvik/film-recommendations/internal/metrics"
)

// BreakerProvider wraps a Provider with circuit breaker protection.
// Completion calls are the slowest dependency in the request path, so
// a dead backend must fail fast rather than hold every request open
// for the full timeout.
type BreakerProvider struct {
	inner Provider
	cb    *gobreaker.CircuitBreaker[string]
	name  string
}

// NewBreakerProvider creates a circuit-breaking completion provider.
// Completion traffic is far lower volume than metadata resolution, so
// the circuit trips on 5 consecutive failures rather than a rate.
func NewBreakerProvider(inner Provider) *BreakerProvider {
	const cbName = "completion-api"

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0)

	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("from", breakerStateString(from)).
				Str("to", breakerStateString(to)).
				Msg("[CIRCUIT BREAKER] Completion state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(breakerStateFloat(to))
		},
	})

	return &BreakerProvider{inner: inner, cb: cb, name: cbName}
}

func (b *BreakerProvider) Complete(ctx context.Context, instructions, input string) (string, error) {
	result, err := b.cb.Execute(func() (string, error) {
		return b.inner.Complete(ctx, instructions, input)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(b.name, "rejected").Inc()
			return "", fmt.Errorf("%w: circuit open", ErrUnavailable)
		}
		metrics.CircuitBreakerRequests.WithLabelValues(b.name, "failure").Inc()
		return "", err
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
