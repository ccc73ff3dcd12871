// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gabrielvik/film-recommendations/internal/conversation"
	"github.com/gabrielvik/film-recommendations/internal/logging"
	"github.com/gabrielvik/film-recommendations/internal/models"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: h.version,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// HealthLive handles GET /health/live (Kubernetes-style liveness).
// Returns 200 if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]interface{}{
		"alive":  true,
		"uptime": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles GET /health/ready (Kubernetes-style readiness).
// Probes the session store with a sentinel lookup; a NotFound answer
// proves the store responds. Returns 503 when the store errors out.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	storeReady := true
	if _, err := h.conversations.GetSession(r.Context(), "readiness-probe"); err != nil &&
		!errors.Is(err, conversation.ErrSessionNotFound) {
		storeReady = false
	}

	statusCode := http.StatusOK
	status := "ready"
	if !storeReady {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON0(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"session_store_ready": storeReady,
			"ready_to_serve":      storeReady,
			"uptime":              time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
	})
}
