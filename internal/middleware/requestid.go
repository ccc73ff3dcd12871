// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

// Package middleware provides HTTP middleware shared across routes.
package middleware

import (
	"net/http"

	"github.com/gabrielvik/film-recommendations/internal/logging"
)

// RequestID generates a unique ID for each request, adds it to the
// X-Request-ID response header, and stores it in the request context
// for structured logging. An incoming X-Request-ID from an upstream
// proxy is honored.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = logging.GenerateRequestID()
		}

		w.Header().Set("X-Request-ID", requestID)
		ctx := logging.ContextWithRequestID(r.Context(), requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
