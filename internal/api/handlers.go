// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

// Package api provides the HTTP handlers and router for the
// recommendation service.
package api

import (
	"context"
	"time"

	"github.com/gabrielvik/film-recommendations/internal/auth"
	"github.com/gabrielvik/film-recommendations/internal/config"
	"github.com/gabrielvik/film-recommendations/internal/conversation"
	"github.com/gabrielvik/film-recommendations/internal/models"
	"github.com/gabrielvik/film-recommendations/internal/watchlist"
)

// ConversationService is the orchestrator surface the handlers use.
type ConversationService interface {
	StartSession(ctx context.Context, prompt string) (*conversation.Session, error)
	ContinueSession(ctx context.Context, sessionID, newPrompt string) (*conversation.Session, error)
	ExcludeMovie(ctx context.Context, sessionID string, id int) (*conversation.Session, error)
	LikeMovie(ctx context.Context, sessionID string, id int) (*conversation.Session, error)
	GetSession(ctx context.Context, sessionID string) (*conversation.Session, error)
}

// RecommendationService is the aggregator surface the handlers use.
type RecommendationService interface {
	GetRecommendations(ctx context.Context, prompt string) ([]models.Recommendation, error)
	GetSeriesRecommendations(ctx context.Context, prompt string) ([]models.Recommendation, error)
	GetMixedRecommendations(ctx context.Context, prompt string, includeMovies, includeSeries bool) ([]models.Recommendation, error)
}

// MovieService resolves movie detail lookups.
type MovieService interface {
	MovieDetails(ctx context.Context, id int) (*models.MovieDetails, error)
}

// Handler holds the dependencies for all HTTP handlers.
type Handler struct {
	cfg           *config.Config
	conversations ConversationService
	recommender   RecommendationService
	movies        MovieService
	watchlist     watchlist.Store
	verifier      *auth.Verifier
	jwt           *auth.JWTManager
	startTime     time.Time
	version       string
}

// NewHandler creates a Handler with all dependencies wired.
func NewHandler(
	cfg *config.Config,
	conversations ConversationService,
	recommender RecommendationService,
	movies MovieService,
	wl watchlist.Store,
	verifier *auth.Verifier,
	jwt *auth.JWTManager,
	version string,
) *Handler {
	return &Handler{
		cfg:           cfg,
		conversations: conversations,
		recommender:   recommender,
		movies:        movies,
		watchlist:     wl,
		verifier:      verifier,
		jwt:           jwt,
		startTime:     time.Now(),
		version:       version,
	}
}
