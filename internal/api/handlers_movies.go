// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// GetMovie handles GET /api/v1/movies/{id}.
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		respondError(w, r, http.StatusBadRequest, "INVALID_REQUEST", "Movie id must be a positive integer", nil)
		return
	}

	details, err := h.movies.MovieDetails(r.Context(), id)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if details == nil {
		respondError(w, r, http.StatusNotFound, "MOVIE_NOT_FOUND", "No movie exists with that id", nil)
		return
	}
	respondJSON(w, r, http.StatusOK, details)
}
