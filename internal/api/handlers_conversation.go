// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type startConversationRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1,max=2000"`
}

type continueConversationRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1,max=2000"`
}

type excludeMovieRequest struct {
	MovieID int `json:"movie_id" validate:"required,gt=0"`
}

type likeMovieRequest struct {
	MovieID int `json:"movie_id" validate:"required,gt=0"`
}

// StartConversation handles POST /api/v1/conversations.
func (h *Handler) StartConversation(w http.ResponseWriter, r *http.Request) {
	var req startConversationRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	session, err := h.conversations.StartSession(r.Context(), req.Prompt)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, session)
}

// GetConversation handles GET /api/v1/conversations/{sessionID}.
func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	session, err := h.conversations.GetSession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, session)
}

// ContinueConversation handles POST /api/v1/conversations/{sessionID}/prompts.
func (h *Handler) ContinueConversation(w http.ResponseWriter, r *http.Request) {
	var req continueConversationRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	session, err := h.conversations.ContinueSession(r.Context(), chi.URLParam(r, "sessionID"), req.Prompt)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, session)
}

// ExcludeMovie handles POST /api/v1/conversations/{sessionID}/exclusions.
func (h *Handler) ExcludeMovie(w http.ResponseWriter, r *http.Request) {
	var req excludeMovieRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	session, err := h.conversations.ExcludeMovie(r.Context(), chi.URLParam(r, "sessionID"), req.MovieID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, session)
}

// LikeMovie handles POST /api/v1/conversations/{sessionID}/likes.
func (h *Handler) LikeMovie(w http.ResponseWriter, r *http.Request) {
	var req likeMovieRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	session, err := h.conversations.LikeMovie(r.Context(), chi.URLParam(r, "sessionID"), req.MovieID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, session)
}
