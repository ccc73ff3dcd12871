// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package completion

import (
	"context"
	"errors"
	"testing"
)

type fakeProvider struct {
	output string
	err    error
	calls  int
}

func (f *fakeProvider) Complete(_ context.Context, _, _ string) (string, error) {
	f.calls++
	return f.output, f.err
}

func TestBreakerPassesThrough(t *testing.T) {
	fake := &fakeProvider{output: `{"recommendations":[]}`}
	breaker := NewBreakerProvider(fake)

	out, err := breaker.Complete(context.Background(), "instructions", "input")
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if out != fake.output {
		t.Errorf("expected output passed through unmodified, got %q", out)
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	fake := &fakeProvider{err: errors.New("connection refused")}
	breaker := NewBreakerProvider(fake)

	for i := 0; i < 5; i++ {
		if _, err := breaker.Complete(context.Background(), "a", "b"); err == nil {
			t.Fatal("expected failure")
		}
	}

	// Circuit is now open: requests are rejected without reaching the backend.
	callsBefore := fake.calls
	_, err := breaker.Complete(context.Background(), "a", "b")
	if err == nil {
		t.Fatal("expected rejection with open circuit")
	}
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable for open circuit, got %v", err)
	}
	if fake.calls != callsBefore {
		t.Errorf("expected backend to be skipped, calls went %d -> %d", callsBefore, fake.calls)
	}
}

func TestBreakerErrorPassthrough(t *testing.T) {
	backendErr := errors.New("bad request")
	fake := &fakeProvider{err: backendErr}
	breaker := NewBreakerProvider(fake)

	_, err := breaker.Complete(context.Background(), "a", "b")
	if !errors.Is(err, backendErr) {
		t.Errorf("expected backend error preserved, got %v", err)
	}
}
