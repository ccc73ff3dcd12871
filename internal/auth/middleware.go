// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/gabrielvik/film-recommendations/internal/config"
	"github.com/gabrielvik/film-recommendations/internal/logging"
	"github.com/gabrielvik/film-recommendations/internal/models"
)

type contextKey string

const usernameKey contextKey = "auth_username"

// UsernameFromContext returns the authenticated username, if any.
func UsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok
}

// Middleware authenticates requests according to the configured mode.
// Mode "none" disables authentication entirely; mode "jwt" requires a
// valid bearer token on every wrapped route.
type Middleware struct {
	mode string
	jwt  *JWTManager
}

// NewMiddleware creates the authentication middleware. The JWTManager
// may be nil when the mode is "none".
func NewMiddleware(cfg *config.SecurityConfig, jwt *JWTManager) *Middleware {
	return &Middleware{mode: cfg.AuthMode, jwt: jwt}
}

// Authenticate wraps a handler with bearer token validation.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.mode == "none" {
			next.ServeHTTP(w, r)
			return
		}

		token := extractBearerToken(r)
		if token == "" {
			writeUnauthorized(w, "missing bearer token")
			return
		}

		claims, err := m.jwt.ValidateToken(token)
		if err != nil {
			logging.Debug().Err(err).Msg("Token validation failed")
			writeUnauthorized(w, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), usernameKey, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(models.APIResponse{
		Status: "error",
		Error: &models.APIError{
			Code:    "UNAUTHORIZED",
			Message: message,
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}
