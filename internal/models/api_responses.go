// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

// Package models defines shared data types for the API surface and the
// recommendation domain.
package models

import "time"

// APIResponse is the standardized envelope used by all HTTP endpoints.
//
// Status is "success" or "error". Data carries the payload on success;
// Error carries structured error details on failure.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// APIError is a structured error payload.
//
// Common codes: VALIDATION_ERROR, SESSION_NOT_FOUND, UPSTREAM_ERROR,
// AUTHENTICATION_ERROR, INTERNAL_ERROR.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
