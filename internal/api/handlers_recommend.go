// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package api

import (
	"net/http"

	"github.com/gabrielvik/film-recommendations/internal/models"
)

type recommendRequest struct {
	Prompt      string `json:"prompt" validate:"required,min=1,max=2000"`
	ContentType string `json:"content_type" validate:"omitempty,oneof=movie series mixed"`

	// Only consulted for content_type "mixed". Unset flags default to
	// true; both explicitly false is an invalid request.
	IncludeMovies *bool `json:"include_movies,omitempty"`
	IncludeSeries *bool `json:"include_series,omitempty"`
}

// Recommend handles POST /api/v1/recommendations: one-shot
// recommendations without session state.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	var recs []models.Recommendation
	var err error

	switch req.ContentType {
	case "", string(models.ContentTypeMovie):
		recs, err = h.recommender.GetRecommendations(r.Context(), req.Prompt)
	case string(models.ContentTypeSeries):
		recs, err = h.recommender.GetSeriesRecommendations(r.Context(), req.Prompt)
	case string(models.ContentTypeMixed):
		includeMovies := req.IncludeMovies == nil || *req.IncludeMovies
		includeSeries := req.IncludeSeries == nil || *req.IncludeSeries
		recs, err = h.recommender.GetMixedRecommendations(r.Context(), req.Prompt, includeMovies, includeSeries)
	}
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	// Zero resolved candidates is a successful empty result.
	if recs == nil {
		recs = []models.Recommendation{}
	}
	respondJSON(w, r, http.StatusOK, recs)
}
