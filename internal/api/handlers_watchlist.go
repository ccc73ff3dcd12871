// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gabrielvik/film-recommendations/internal/auth"
	"github.com/gabrielvik/film-recommendations/internal/models"
)

type addWatchlistRequest struct {
	MovieID   int    `json:"movie_id" validate:"required,gt=0"`
	Title     string `json:"title" validate:"required,min=1,max=500"`
	Year      int    `json:"year" validate:"omitempty,gte=1870,lte=2100"`
	PosterURL string `json:"poster_url" validate:"omitempty,url"`
}

// watchlistUser resolves the owning user for watchlist operations.
// With authentication disabled every request shares one list.
func watchlistUser(r *http.Request) string {
	if username, ok := auth.UsernameFromContext(r.Context()); ok {
		return username
	}
	return "default"
}

// ListWatchlist handles GET /api/v1/watchlist.
func (h *Handler) ListWatchlist(w http.ResponseWriter, r *http.Request) {
	entries, err := h.watchlist.List(r.Context(), watchlistUser(r))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	if entries == nil {
		entries = []models.WatchlistEntry{}
	}
	respondJSON(w, r, http.StatusOK, entries)
}

// AddToWatchlist handles POST /api/v1/watchlist.
func (h *Handler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	var req addWatchlistRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	entry := models.WatchlistEntry{
		MovieID:   req.MovieID,
		Title:     req.Title,
		Year:      req.Year,
		PosterURL: req.PosterURL,
		AddedAt:   time.Now().Unix(),
	}
	if err := h.watchlist.Add(r.Context(), watchlistUser(r), entry); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, entry)
}

// RemoveFromWatchlist handles DELETE /api/v1/watchlist/{movieID}.
func (h *Handler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	movieID, err := strconv.Atoi(chi.URLParam(r, "movieID"))
	if err != nil || movieID <= 0 {
		respondError(w, r, http.StatusBadRequest, "INVALID_REQUEST", "Movie id must be a positive integer", nil)
		return
	}

	if err := h.watchlist.Remove(r.Context(), watchlistUser(r), movieID); err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]int{"removed": movieID})
}
