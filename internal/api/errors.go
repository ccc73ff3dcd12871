// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

// errors.go - mapping from domain errors to HTTP responses
package api

import (
	"errors"
	"net/http"

	"github.com/gabrielvik/film-recommendations/internal/completion"
	"github.com/gabrielvik/film-recommendations/internal/conversation"
	"github.com/gabrielvik/film-recommendations/internal/recommend"
)

// respondDomainError maps domain errors onto the API taxonomy:
// session lookups fail with 404, invalid arguments with 400, upstream
// failures with 502, and everything else collapses to a generic 500
// with the cause logged.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, conversation.ErrSessionNotFound):
		respondError(w, r, http.StatusNotFound, "SESSION_NOT_FOUND",
			"Session does not exist or has expired", nil)
	case errors.Is(err, recommend.ErrInvalidContentType):
		respondError(w, r, http.StatusBadRequest, "INVALID_CONTENT_TYPE",
			"At least one of movies or series must be included", nil)
	case errors.Is(err, recommend.ErrMalformedCompletion):
		respondError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR",
			"The recommendation backend returned an unusable response", err)
	case errors.Is(err, completion.ErrUnavailable):
		respondError(w, r, http.StatusBadGateway, "UPSTREAM_ERROR",
			"The recommendation backend is unavailable", err)
	default:
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR",
			"An internal error occurred", err)
	}
}
