// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

// Package completion wraps the LLM backend that generates raw
// recommendation candidates. The rest of the system only sees the
// Provider interface, so the backend can be swapped or faked in tests.
package completion

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the completion backend could not be reached
// or refused the request. Handlers map it to a 502.
var ErrUnavailable = errors.New("completion backend unavailable")

// Provider generates a completion for an instruction/input pair.
// Implementations must return the raw model output text unmodified;
// parsing and validation happen in the caller.
type Provider interface {
	Complete(ctx context.Context, instructions, input string) (string, error)
}
