// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package tmdb

import (
	"context"
	"time"

	"github.com/gabrielvik/film-recommendations/internal/cache"
	"github.com/gabrielvik/film-recommendations/internal/logging"
	"github.com/gabrielvik/film-recommendations/internal/metrics"
	"github.com/gabrielvik/film-recommendations/internal/models"
)

// Resolution is the outcome of resolving a title against TMDB. Found
// is false when the title matched nothing; that is not an error.
type Resolution struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
	PosterURL string `json:"poster_url"`
	Found     bool   `json:"found"`
}

// Resolver maps a raw title/year pair to a canonical TMDB record.
type Resolver interface {
	ResolveMovie(ctx context.Context, title string, year int) (Resolution, error)
	ResolveSeries(ctx context.Context, title string, year int) (Resolution, error)
	MovieDetails(ctx context.Context, id int) (*models.MovieDetails, error)
}

// ResolveMovie resolves a movie title to the best TMDB match. A year
// hint narrows the search; when the year-constrained search finds
// nothing the search is retried without the year, since completion
// output frequently carries an off-by-one release year.
func (c *Client) ResolveMovie(ctx context.Context, title string, year int) (Resolution, error) {
	results, err := c.SearchMovie(ctx, title, year)
	if err != nil {
		metrics.ResolutionsTotal.WithLabelValues("error").Inc()
		return Resolution{}, err
	}
	if len(results) == 0 && year > 0 {
		results, err = c.SearchMovie(ctx, title, 0)
		if err != nil {
			metrics.ResolutionsTotal.WithLabelValues("error").Inc()
			return Resolution{}, err
		}
	}
	return c.firstMatch(results, false), nil
}

// ResolveSeries resolves a TV series title to the best TMDB match.
func (c *Client) ResolveSeries(ctx context.Context, title string, year int) (Resolution, error) {
	results, err := c.SearchTV(ctx, title, year)
	if err != nil {
		metrics.ResolutionsTotal.WithLabelValues("error").Inc()
		return Resolution{}, err
	}
	if len(results) == 0 && year > 0 {
		results, err = c.SearchTV(ctx, title, 0)
		if err != nil {
			metrics.ResolutionsTotal.WithLabelValues("error").Inc()
			return Resolution{}, err
		}
	}
	return c.firstMatch(results, true), nil
}

// MovieDetails fetches the detail record for a resolved movie id.
func (c *Client) MovieDetails(ctx context.Context, id int) (*models.MovieDetails, error) {
	return c.GetMovieDetails(ctx, id)
}

// firstMatch converts the top search result into a Resolution. TMDB
// orders search results by relevance, so the first hit is the match.
func (c *Client) firstMatch(results []searchResult, tv bool) Resolution {
	if len(results) == 0 {
		metrics.ResolutionsTotal.WithLabelValues("not_found").Inc()
		return Resolution{Found: false}
	}

	top := results[0]
	title := top.Title
	date := top.ReleaseDate
	if tv {
		title = top.Name
		date = top.FirstAirDate
	}

	metrics.ResolutionsTotal.WithLabelValues("resolved").Inc()
	return Resolution{
		ID:        top.ID,
		Title:     title,
		Year:      yearFromDate(date),
		PosterURL: c.PosterURL(top.PosterPath),
		Found:     true,
	}
}

// CachedResolver wraps a Resolver with a TTL cache. Completion output
// repeats popular titles across sessions, so caching resolutions cuts
// most TMDB traffic.
type CachedResolver struct {
	inner Resolver
	cache *cache.Cache
}

// NewCachedResolver creates a caching resolver with the given TTL.
func NewCachedResolver(inner Resolver, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		inner: inner,
		cache: cache.New(ttl),
	}
}

func (r *CachedResolver) ResolveMovie(ctx context.Context, title string, year int) (Resolution, error) {
	return r.resolve(ctx, "movie", title, year, r.inner.ResolveMovie)
}

func (r *CachedResolver) ResolveSeries(ctx context.Context, title string, year int) (Resolution, error) {
	return r.resolve(ctx, "series", title, year, r.inner.ResolveSeries)
}

// MovieDetails caches detail lookups under the movie id. A nil record
// (unknown id) is not cached so a transient TMDB outage cannot pin a
// title as missing for the full TTL.
func (r *CachedResolver) MovieDetails(ctx context.Context, id int) (*models.MovieDetails, error) {
	key := cache.GenerateKey("movie_details", map[string]interface{}{"id": id})
	if cached, ok := r.cache.Get(key); ok {
		metrics.ResolutionCacheHits.Inc()
		details := cached.(models.MovieDetails)
		return &details, nil
	}

	details, err := r.inner.MovieDetails(ctx, id)
	if err != nil || details == nil {
		return details, err
	}
	r.cache.Set(key, *details)
	return details, nil
}

// Close releases the cache's background cleanup goroutine.
func (r *CachedResolver) Close() {
	r.cache.Close()
}

func (r *CachedResolver) resolve(ctx context.Context, kind, title string, year int,
	fn func(context.Context, string, int) (Resolution, error)) (Resolution, error) {

	key := cache.GenerateKey("resolve_"+kind, map[string]interface{}{
		"title": title,
		"year":  year,
	})

	if cached, ok := r.cache.Get(key); ok {
		metrics.ResolutionCacheHits.Inc()
		return cached.(Resolution), nil
	}

	res, err := fn(ctx, title, year)
	if err != nil {
		return Resolution{}, err
	}

	// Not-found outcomes are cached too: retrying a hallucinated title
	// on every request would just burn TMDB quota.
	r.cache.Set(key, res)

	if !res.Found {
		logging.Debug().
			Str("kind", kind).
			Str("title", title).
			Int("year", year).
			Msg("Title did not resolve against TMDB")
	}
	return res, nil
}
