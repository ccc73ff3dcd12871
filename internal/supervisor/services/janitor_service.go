// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package services

import (
	"context"
	"time"

	"github.com/gabrielvik/film-recommendations/internal/logging"
	"github.com/gabrielvik/film-recommendations/internal/metrics"
)

// SessionCleaner matches the store method the janitor drives.
// Satisfied by conversation.Store.
type SessionCleaner interface {
	CleanupExpired(ctx context.Context) (int, error)
}

// JanitorService periodically sweeps expired sessions out of the store.
// The in-memory store needs the sweep to reclaim memory; the Badger store
// uses it to run value log garbage collection.
type JanitorService struct {
	store    SessionCleaner
	interval time.Duration
	name     string
}

// NewJanitorService creates a janitor sweeping at the given interval.
func NewJanitorService(store SessionCleaner, interval time.Duration) *JanitorService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &JanitorService{
		store:    store,
		interval: interval,
		name:     "session-janitor",
	}
}

// Serve implements suture.Service. A failed sweep is logged and retried
// on the next tick rather than crashing the service.
func (j *JanitorService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			removed, err := j.store.CleanupExpired(ctx)
			if err != nil {
				logging.Warn().Err(err).Msg("session cleanup sweep failed")
				continue
			}
			if removed > 0 {
				metrics.SessionsExpired.Add(float64(removed))
				metrics.SessionsActive.Sub(float64(removed))
				logging.Debug().Int("removed", removed).Msg("expired sessions removed")
			}
		}
	}
}

// String implements fmt.Stringer for supervisor logging.
func (j *JanitorService) String() string {
	return j.name
}
