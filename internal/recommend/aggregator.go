// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

/*
aggregator.go - Recommendation Aggregator

Turns one natural-language prompt into zero or more resolved
recommendations: asks the completion backend for a strict-JSON
candidate list, validates the parsed shape, then resolves each
candidate against TMDB for a canonical id and poster.

Candidates that fail resolution are dropped silently. The completion
backend hallucinates titles routinely, and one bad candidate must not
abort an otherwise useful batch. An all-dropped batch is a successful
empty result, not an error.
*/

package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/gabrielvik/film-recommendations/internal/completion"
	"github.com/gabrielvik/film-recommendations/internal/logging"
	"github.com/gabrielvik/film-recommendations/internal/metrics"
	"github.com/gabrielvik/film-recommendations/internal/models"
	"github.com/gabrielvik/film-recommendations/internal/tmdb"
)

// RawCandidate is an unresolved movie candidate as emitted by the
// completion backend. It may reference a title that does not exist.
type RawCandidate struct {
	Name string `json:"name"`
	Year int    `json:"year"`
}

// typedCandidate is the candidate shape for series and mixed requests.
type typedCandidate struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
	Type  string `json:"type"`
}

// Aggregator composes the completion backend and the metadata
// resolver into the recommend operation.
type Aggregator struct {
	provider completion.Provider
	resolver tmdb.Resolver
}

// NewAggregator creates an Aggregator over the given backends.
func NewAggregator(provider completion.Provider, resolver tmdb.Resolver) *Aggregator {
	return &Aggregator{provider: provider, resolver: resolver}
}

// GetRecommendations generates movie recommendations for a prompt.
// Returns an empty list, not an error, when no candidate survives
// resolution.
func (a *Aggregator) GetRecommendations(ctx context.Context, prompt string) ([]models.Recommendation, error) {
	output, err := a.provider.Complete(ctx, movieInstructions, prompt)
	if err != nil {
		return nil, err
	}

	candidates, err := parseMovieCandidates(output)
	if err != nil {
		return nil, err
	}

	return a.resolveAll(ctx, candidates)
}

// GetSeriesRecommendations generates TV series recommendations.
func (a *Aggregator) GetSeriesRecommendations(ctx context.Context, prompt string) ([]models.Recommendation, error) {
	output, err := a.provider.Complete(ctx, seriesInstructions, prompt)
	if err != nil {
		return nil, err
	}

	candidates, err := parseTypedCandidates(output)
	if err != nil {
		return nil, err
	}

	// The series instructions only allow type "series"; anything else
	// already failed shape validation.
	return a.resolveAllTyped(ctx, candidates)
}

// GetMixedRecommendations generates recommendations spanning movies
// and series according to the include flags. Both flags false is an
// invalid request.
func (a *Aggregator) GetMixedRecommendations(ctx context.Context, prompt string, includeMovies, includeSeries bool) ([]models.Recommendation, error) {
	if !includeMovies && !includeSeries {
		return nil, ErrInvalidContentType
	}

	instructions := mixedInstructions
	switch {
	case includeMovies && !includeSeries:
		instructions += mixedMoviesOnlyNote
	case includeSeries && !includeMovies:
		instructions += mixedSeriesOnlyNote
	}

	output, err := a.provider.Complete(ctx, instructions, prompt)
	if err != nil {
		return nil, err
	}

	candidates, err := parseTypedCandidates(output)
	if err != nil {
		return nil, err
	}

	// The model occasionally ignores a kind restriction. Enforce the
	// flags here rather than trusting the instruction.
	filtered := candidates[:0]
	for _, c := range candidates {
		if c.Type == string(models.ContentTypeMovie) && !includeMovies {
			continue
		}
		if c.Type == string(models.ContentTypeSeries) && !includeSeries {
			continue
		}
		filtered = append(filtered, c)
	}

	return a.resolveAllTyped(ctx, filtered)
}

// parseMovieCandidates parses and shape-validates the movie schema.
// Any deviation from a raw JSON array of {name, year} objects fails
// the whole call. No fence stripping or salvage parsing.
func parseMovieCandidates(output string) ([]RawCandidate, error) {
	var candidates []RawCandidate
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &candidates); err != nil {
		metrics.MalformedCompletions.Inc()
		logging.Warn().Err(err).Str("output_prefix", truncate(output, 200)).Msg("Completion output failed to parse")
		return nil, fmt.Errorf("%w: %v", ErrMalformedCompletion, err)
	}
	for i, c := range candidates {
		if strings.TrimSpace(c.Name) == "" {
			metrics.MalformedCompletions.Inc()
			return nil, fmt.Errorf("%w: candidate %d has no name", ErrMalformedCompletion, i)
		}
	}
	return candidates, nil
}

// parseTypedCandidates parses and shape-validates the type-tagged
// schema used for series and mixed requests.
func parseTypedCandidates(output string) ([]typedCandidate, error) {
	var candidates []typedCandidate
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &candidates); err != nil {
		metrics.MalformedCompletions.Inc()
		logging.Warn().Err(err).Str("output_prefix", truncate(output, 200)).Msg("Completion output failed to parse")
		return nil, fmt.Errorf("%w: %v", ErrMalformedCompletion, err)
	}
	for i, c := range candidates {
		if strings.TrimSpace(c.Title) == "" {
			metrics.MalformedCompletions.Inc()
			return nil, fmt.Errorf("%w: candidate %d has no title", ErrMalformedCompletion, i)
		}
		if c.Type != string(models.ContentTypeMovie) && c.Type != string(models.ContentTypeSeries) {
			metrics.MalformedCompletions.Inc()
			return nil, fmt.Errorf("%w: candidate %d has type %q", ErrMalformedCompletion, i, c.Type)
		}
	}
	return candidates, nil
}

// resolveAll resolves movie candidates in completion order, dropping
// failures and deduplicating by id (first hit kept).
func (a *Aggregator) resolveAll(ctx context.Context, candidates []RawCandidate) ([]models.Recommendation, error) {
	recs := make([]models.Recommendation, 0, len(candidates))
	seen := make(map[int]struct{}, len(candidates))

	for _, c := range candidates {
		res, err := a.resolver.ResolveMovie(ctx, c.Name, c.Year)
		if err != nil {
			logging.Debug().Err(err).Str("title", c.Name).Msg("Dropping candidate after resolution failure")
			continue
		}
		if !res.Found || res.ID <= 0 {
			continue
		}
		if _, dup := seen[res.ID]; dup {
			continue
		}
		seen[res.ID] = struct{}{}
		recs = append(recs, models.Recommendation{
			ID:        res.ID,
			Title:     res.Title,
			Year:      res.Year,
			PosterURL: res.PosterURL,
			Type:      models.ContentTypeMovie,
		})
	}
	return recs, nil
}

func (a *Aggregator) resolveAllTyped(ctx context.Context, candidates []typedCandidate) ([]models.Recommendation, error) {
	recs := make([]models.Recommendation, 0, len(candidates))
	seen := make(map[int]struct{}, len(candidates))

	for _, c := range candidates {
		var res tmdb.Resolution
		var err error
		contentType := models.ContentType(c.Type)
		if contentType == models.ContentTypeSeries {
			res, err = a.resolver.ResolveSeries(ctx, c.Title, c.Year)
		} else {
			res, err = a.resolver.ResolveMovie(ctx, c.Title, c.Year)
		}
		if err != nil {
			logging.Debug().Err(err).Str("title", c.Title).Str("type", c.Type).Msg("Dropping candidate after resolution failure")
			continue
		}
		if !res.Found || res.ID <= 0 {
			continue
		}
		if _, dup := seen[res.ID]; dup {
			continue
		}
		seen[res.ID] = struct{}{}
		recs = append(recs, models.Recommendation{
			ID:        res.ID,
			Title:     res.Title,
			Year:      res.Year,
			PosterURL: res.PosterURL,
			Type:      contentType,
		})
	}
	return recs, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
