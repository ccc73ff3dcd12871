// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gabrielvik/film-recommendations/internal/config"
)

func testConfig(serverURL string) *config.TMDBConfig {
	return &config.TMDBConfig{
		APIKey:       "test-token",
		BaseURL:      serverURL,
		ImageBaseURL: "https://image.tmdb.org/t/p",
		PosterSize:   "w342",
		Timeout:      5 * time.Second,
		RateLimit:    100,
	}
}

func TestResolveMovie(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/movie" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("expected bearer auth, got %q", got)
		}
		if got := r.URL.Query().Get("query"); got != "Inception" {
			t.Errorf("expected query Inception, got %q", got)
		}
		if got := r.URL.Query().Get("primary_release_year"); got != "2010" {
			t.Errorf("expected year filter 2010, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"total_results":1,"results":[
			{"id":27205,"title":"Inception","release_date":"2010-07-15","poster_path":"/inception.jpg","vote_average":8.4}
		]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	res, err := client.ResolveMovie(context.Background(), "Inception", 2010)
	if err != nil {
		t.Fatalf("ResolveMovie failed: %v", err)
	}

	if !res.Found {
		t.Fatal("expected resolution to be found")
	}
	if res.ID != 27205 {
		t.Errorf("expected id 27205, got %d", res.ID)
	}
	if res.Title != "Inception" {
		t.Errorf("expected title Inception, got %q", res.Title)
	}
	if res.Year != 2010 {
		t.Errorf("expected year 2010, got %d", res.Year)
	}
	if want := "https://image.tmdb.org/t/p/w342/inception.jpg"; res.PosterURL != want {
		t.Errorf("expected poster URL %q, got %q", want, res.PosterURL)
	}
}

func TestResolveMovieNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"page":1,"total_results":0,"results":[]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	res, err := client.ResolveMovie(context.Background(), "No Such Film Ever Made", 0)
	if err != nil {
		t.Fatalf("expected no error for empty results, got %v", err)
	}
	if res.Found {
		t.Error("expected Found=false for empty results")
	}
}

func TestResolveMovieYearFallback(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("primary_release_year") != "" {
			// Year-constrained search misses, unconstrained retry hits.
			_, _ = w.Write([]byte(`{"results":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"id":603,"title":"The Matrix","release_date":"1999-03-31"}]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	res, err := client.ResolveMovie(context.Background(), "The Matrix", 1998)
	if err != nil {
		t.Fatalf("ResolveMovie failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 search calls, got %d", calls)
	}
	if !res.Found || res.ID != 603 {
		t.Errorf("expected fallback resolution to id 603, got %+v", res)
	}
}

func TestResolveSeries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/tv" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"id":1396,"name":"Breaking Bad","first_air_date":"2008-01-20","poster_path":"/bb.jpg"}
		]}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	res, err := client.ResolveSeries(context.Background(), "Breaking Bad", 2008)
	if err != nil {
		t.Fatalf("ResolveSeries failed: %v", err)
	}
	if res.Title != "Breaking Bad" {
		t.Errorf("expected TV name field to be used, got %q", res.Title)
	}
	if res.Year != 2008 {
		t.Errorf("expected first air year 2008, got %d", res.Year)
	}
}

func TestGetMovieDetails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/27205" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id":27205,"title":"Inception","overview":"A thief enters dreams.",
			"release_date":"2010-07-15","runtime":148,"vote_average":8.4,
			"genres":[{"id":28,"name":"Action"},{"id":878,"name":"Science Fiction"}],
			"poster_path":"/inception.jpg","backdrop_path":"/bg.jpg","tagline":"Your mind is the scene of the crime."
		}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	details, err := client.GetMovieDetails(context.Background(), 27205)
	if err != nil {
		t.Fatalf("GetMovieDetails failed: %v", err)
	}
	if details == nil {
		t.Fatal("expected details, got nil")
	}
	if details.Runtime != 148 {
		t.Errorf("expected runtime 148, got %d", details.Runtime)
	}
	if len(details.Genres) != 2 || details.Genres[0] != "Action" {
		t.Errorf("unexpected genres: %v", details.Genres)
	}
}

func TestGetMovieDetailsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"not found"}`))
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	details, err := client.GetMovieDetails(context.Background(), 999999999)
	if err != nil {
		t.Fatalf("expected 404 to map to nil record, got error %v", err)
	}
	if details != nil {
		t.Errorf("expected nil details for unknown id, got %+v", details)
	}
}

func TestGetServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testConfig(server.URL))
	if _, err := client.ResolveMovie(context.Background(), "Anything", 0); err == nil {
		t.Error("expected error for HTTP 500")
	}
}

func TestMissingAPIKey(t *testing.T) {
	cfg := testConfig("http://localhost:1")
	cfg.APIKey = ""
	client := NewClient(cfg)
	if _, err := client.ResolveMovie(context.Background(), "Anything", 0); err == nil {
		t.Error("expected error when API key is not configured")
	}
}

func TestYearFromDate(t *testing.T) {
	tests := []struct {
		name string
		date string
		want int
	}{
		{"full date", "2010-07-15", 2010},
		{"empty", "", 0},
		{"year only", "1999", 1999},
		{"garbage", "abc", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := yearFromDate(tt.date); got != tt.want {
				t.Errorf("yearFromDate(%q) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestCachedResolver(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":27205,"title":"Inception","release_date":"2010-07-15"}]}`))
	}))
	defer server.Close()

	resolver := NewCachedResolver(NewClient(testConfig(server.URL)), time.Minute)
	defer resolver.Close()

	for i := 0; i < 3; i++ {
		res, err := resolver.ResolveMovie(context.Background(), "Inception", 2010)
		if err != nil {
			t.Fatalf("ResolveMovie failed: %v", err)
		}
		if res.ID != 27205 {
			t.Errorf("expected id 27205, got %d", res.ID)
		}
	}

	if calls != 1 {
		t.Errorf("expected 1 upstream call for 3 resolutions, got %d", calls)
	}
}

func TestCachedResolverCachesNotFound(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer server.Close()

	resolver := NewCachedResolver(NewClient(testConfig(server.URL)), time.Minute)
	defer resolver.Close()

	for i := 0; i < 2; i++ {
		res, err := resolver.ResolveMovie(context.Background(), "Hallucinated Title", 0)
		if err != nil {
			t.Fatalf("ResolveMovie failed: %v", err)
		}
		if res.Found {
			t.Error("expected Found=false")
		}
	}
	if calls != 1 {
		t.Errorf("expected not-found to be cached, got %d upstream calls", calls)
	}
}

func TestPosterURLEmpty(t *testing.T) {
	client := NewClient(testConfig("http://localhost:1"))
	if got := client.PosterURL(""); got != "" {
		t.Errorf("expected empty poster URL for empty path, got %q", got)
	}
}
