// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package models

// ContentType selects what kind of content a recommendation request covers.
type ContentType string

const (
	ContentTypeMovie  ContentType = "movie"
	ContentTypeSeries ContentType = "series"
	ContentTypeMixed  ContentType = "mixed"
)

// Recommendation is a resolved, displayable movie or series entry.
// ID is the canonical TMDB identifier and the stable merge/dedup key.
// PosterURL is a fully-qualified image URL, empty when TMDB has no poster.
type Recommendation struct {
	ID        int         `json:"id"`
	Title     string      `json:"title"`
	Year      int         `json:"year"`
	PosterURL string      `json:"poster_url,omitempty"`
	Type      ContentType `json:"type,omitempty"`
}

// MovieDetails is the full TMDB detail record served by the movie
// details endpoint.
type MovieDetails struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Overview    string   `json:"overview"`
	ReleaseDate string   `json:"release_date"`
	Runtime     int      `json:"runtime"`
	VoteAverage float64  `json:"vote_average"`
	Genres      []string `json:"genres"`
	PosterURL   string   `json:"poster_url,omitempty"`
	BackdropURL string   `json:"backdrop_url,omitempty"`
	Tagline     string   `json:"tagline,omitempty"`
}

// WatchlistEntry is one saved item on a user's watchlist.
type WatchlistEntry struct {
	MovieID   int    `json:"movie_id"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
	PosterURL string `json:"poster_url,omitempty"`
	AddedAt   int64  `json:"added_at"`
}
