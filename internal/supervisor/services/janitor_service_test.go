// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type mockCleaner struct {
	calls   atomic.Int32
	removed int
	err     error
}

func (m *mockCleaner) CleanupExpired(context.Context) (int, error) {
	m.calls.Add(1)
	return m.removed, m.err
}

func TestJanitorSweepsOnInterval(t *testing.T) {
	cleaner := &mockCleaner{removed: 2}
	svc := NewJanitorService(cleaner, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.After(time.Second)
	for cleaner.calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 sweeps, got %d", cleaner.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestJanitorSurvivesSweepFailure(t *testing.T) {
	cleaner := &mockCleaner{err: errors.New("store unavailable")}
	svc := NewJanitorService(cleaner, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.After(time.Second)
	for cleaner.calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected retries after failure, got %d calls", cleaner.calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	<-done
}

func TestJanitorDefaultsInterval(t *testing.T) {
	svc := NewJanitorService(&mockCleaner{}, 0)
	if svc.interval != 5*time.Minute {
		t.Errorf("expected 5m default, got %v", svc.interval)
	}
	if svc.String() != "session-janitor" {
		t.Errorf("unexpected name %q", svc.String())
	}
}
