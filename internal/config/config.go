// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

// Package config provides layered application configuration:
// built-in defaults, then an optional YAML file, then environment
// variables. Loading is done with koanf v2; see koanf.go.
package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Security  SecurityConfig  `koanf:"security"`
	OpenAI    OpenAIConfig    `koanf:"openai"`
	TMDB      TMDBConfig      `koanf:"tmdb"`
	Sessions  SessionsConfig  `koanf:"sessions"`
	Watchlist WatchlistConfig `koanf:"watchlist"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// SecurityConfig holds authentication, CORS and rate limiting settings.
//
// AuthMode selects how API routes are guarded:
//   - "none": all data routes are open; the watchlist collapses to a
//     single shared list
//   - "jwt": all data routes require a bearer token from /auth/login
type SecurityConfig struct {
	AuthMode          string        `koanf:"auth_mode"`
	JWTSecret         string        `koanf:"jwt_secret"`
	TokenLifetime     time.Duration `koanf:"token_lifetime"`
	AdminUsername     string        `koanf:"admin_username"`
	AdminPasswordHash string        `koanf:"admin_password_hash"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// OpenAIConfig holds completion provider settings.
type OpenAIConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Model   string        `koanf:"model"`
	Timeout time.Duration `koanf:"timeout"`
}

// TMDBConfig holds metadata resolver settings.
type TMDBConfig struct {
	APIKey       string        `koanf:"api_key"`
	BaseURL      string        `koanf:"base_url"`
	ImageBaseURL string        `koanf:"image_base_url"`
	PosterSize   string        `koanf:"poster_size"`
	Timeout      time.Duration `koanf:"timeout"`
	// RateLimit is the maximum requests per second issued to TMDB.
	RateLimit float64 `koanf:"rate_limit"`
	// CacheTTL bounds how long search/detail responses are reused.
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// SessionsConfig holds conversation session store settings.
//
// Store selects the backend: "memory" or "badger".
type SessionsConfig struct {
	Store           string        `koanf:"store"`
	Path            string        `koanf:"path"`
	TTL             time.Duration `koanf:"ttl"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// WatchlistConfig holds watchlist store settings.
type WatchlistConfig struct {
	Store string `koanf:"store"`
	Path  string `koanf:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8085,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Security: SecurityConfig{
			AuthMode:          "none",
			JWTSecret:         "",
			TokenLifetime:     24 * time.Hour,
			AdminUsername:     "",
			AdminPasswordHash: "",
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		OpenAI: OpenAIConfig{
			APIKey:  "",
			BaseURL: "",
			Model:   "gpt-4o-mini",
			Timeout: 60 * time.Second,
		},
		TMDB: TMDBConfig{
			APIKey:       "",
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p",
			PosterSize:   "w342",
			Timeout:      10 * time.Second,
			RateLimit:    40,
			CacheTTL:     6 * time.Hour,
		},
		Sessions: SessionsConfig{
			Store:           "memory",
			Path:            "/data/sessions",
			TTL:             2 * time.Hour,
			CleanupInterval: 5 * time.Minute,
		},
		Watchlist: WatchlistConfig{
			Store: "memory",
			Path:  "/data/watchlist",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}
