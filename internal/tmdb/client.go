// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

/*
client.go - TMDB REST API client

Implements the metadata resolver capability on top of The Movie
Database v3 API: search movies/TV by title and year, fetch movie
details by id.

API Reference: https://developer.themoviedb.org/reference
Authentication: Bearer token (TMDB API read access token).
*/

package tmdb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/gabrielvik/film-recommendations/internal/config"
	"github.com/gabrielvik/film-recommendations/internal/models"
)

// Client provides access to the TMDB REST API. It applies a client-side
// rate limit so bursts of resolution requests stay inside TMDB's quota.
type Client struct {
	baseURL      string
	apiKey       string
	imageBaseURL string
	posterSize   string
	httpClient   *http.Client
	limiter      *rate.Limiter
}

// NewClient creates a TMDB API client from configuration.
func NewClient(cfg *config.TMDBConfig) *Client {
	return &Client{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:       cfg.APIKey,
		imageBaseURL: strings.TrimSuffix(cfg.ImageBaseURL, "/"),
		posterSize:   cfg.PosterSize,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), int(cfg.RateLimit)),
	}
}

// searchResult is one entry from a TMDB search endpoint. Movies carry
// Title/ReleaseDate, TV shows carry Name/FirstAirDate.
type searchResult struct {
	ID           int     `json:"id"`
	Title        string  `json:"title,omitempty"`
	Name         string  `json:"name,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
	PosterPath   string  `json:"poster_path"`
	VoteAverage  float64 `json:"vote_average"`
}

type searchResponse struct {
	Page         int            `json:"page"`
	TotalResults int            `json:"total_results"`
	Results      []searchResult `json:"results"`
}

type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// movieDetails is the response from GET /movie/{id}.
type movieDetails struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	Runtime      int     `json:"runtime"`
	VoteAverage  float64 `json:"vote_average"`
	Genres       []genre `json:"genres"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Tagline      string  `json:"tagline"`
}

// SearchMovie searches for a movie by title, optionally constrained to
// a release year. A zero year means no year filter.
func (c *Client) SearchMovie(ctx context.Context, title string, year int) ([]searchResult, error) {
	query := url.Values{}
	query.Set("query", title)
	if year > 0 {
		query.Set("primary_release_year", strconv.Itoa(year))
	}

	var resp searchResponse
	if err := c.get(ctx, "/search/movie", query, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// SearchTV searches for a TV series by title, optionally constrained
// to a first-air year.
func (c *Client) SearchTV(ctx context.Context, title string, year int) ([]searchResult, error) {
	query := url.Values{}
	query.Set("query", title)
	if year > 0 {
		query.Set("first_air_date_year", strconv.Itoa(year))
	}

	var resp searchResponse
	if err := c.get(ctx, "/search/tv", query, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// GetMovieDetails fetches the full detail record for a movie id.
// Returns (nil, nil) when TMDB has no record for the id.
func (c *Client) GetMovieDetails(ctx context.Context, id int) (*models.MovieDetails, error) {
	var raw movieDetails
	err := c.get(ctx, "/movie/"+strconv.Itoa(id), nil, &raw)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	genres := make([]string, 0, len(raw.Genres))
	for _, g := range raw.Genres {
		genres = append(genres, g.Name)
	}

	return &models.MovieDetails{
		ID:          raw.ID,
		Title:       raw.Title,
		Overview:    raw.Overview,
		ReleaseDate: raw.ReleaseDate,
		Runtime:     raw.Runtime,
		VoteAverage: raw.VoteAverage,
		Genres:      genres,
		PosterURL:   c.PosterURL(raw.PosterPath),
		BackdropURL: c.PosterURL(raw.BackdropPath),
		Tagline:     raw.Tagline,
	}, nil
}

// PosterURL builds a fully-qualified image URL from a TMDB poster path.
// Returns "" for an empty path.
func (c *Client) PosterURL(path string) string {
	if path == "" {
		return ""
	}
	return c.imageBaseURL + "/" + c.posterSize + path
}

// errNotFound marks a 404 from TMDB. Not-found is a normal outcome for
// resolution, so callers need to distinguish it from transport failures.
type errNotFound struct {
	path string
}

func (e *errNotFound) Error() string {
	return fmt.Sprintf("tmdb: not found: %s", e.path)
}

func isNotFound(err error) bool {
	_, ok := err.(*errNotFound)
	return ok
}

// get makes a rate-limited GET request and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, query url.Values, dest interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("tmdb: api key not configured")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("tmdb rate limiter: %w", err)
	}

	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("tmdb request build: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return &errNotFound{path: path}
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("tmdb: invalid API key")
	case resp.StatusCode != http.StatusOK:
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			return fmt.Errorf("tmdb: HTTP %d for %s", resp.StatusCode, path)
		}
		return fmt.Errorf("tmdb: HTTP %d for %s: %s", resp.StatusCode, path, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("tmdb decode %s: %w", path, err)
	}
	return nil
}

// yearFromDate extracts the year from a TMDB date string (YYYY-MM-DD).
// Returns 0 for empty or malformed dates.
func yearFromDate(date string) int {
	if len(date) < 4 {
		return 0
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		year, convErr := strconv.Atoi(date[:4])
		if convErr != nil {
			return 0
		}
		return year
	}
	return t.Year()
}
