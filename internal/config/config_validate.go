// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks configuration consistency. It is called after loading
// and returns an error describing the first problem found.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	switch c.Security.AuthMode {
	case "none", "jwt":
	default:
		return fmt.Errorf("security.auth_mode must be \"none\" or \"jwt\", got %q", c.Security.AuthMode)
	}

	if c.Security.AuthMode == "jwt" {
		if c.Security.JWTSecret == "" {
			return errors.New("security.jwt_secret is required when auth_mode is jwt")
		}
		if len(c.Security.JWTSecret) < 32 {
			return errors.New("security.jwt_secret must be at least 32 characters")
		}
		if c.Security.AdminUsername == "" || c.Security.AdminPasswordHash == "" {
			return errors.New("security.admin_username and security.admin_password_hash are required when auth_mode is jwt")
		}
	}

	switch c.Sessions.Store {
	case "memory":
	case "badger":
		if c.Sessions.Path == "" {
			return errors.New("sessions.path is required when sessions.store is badger")
		}
	default:
		return fmt.Errorf("sessions.store must be \"memory\" or \"badger\", got %q", c.Sessions.Store)
	}
	if c.Sessions.TTL <= 0 {
		return errors.New("sessions.ttl must be positive")
	}
	if c.Sessions.CleanupInterval <= 0 {
		return errors.New("sessions.cleanup_interval must be positive")
	}

	switch c.Watchlist.Store {
	case "memory":
	case "badger":
		if c.Watchlist.Path == "" {
			return errors.New("watchlist.path is required when watchlist.store is badger")
		}
	default:
		return fmt.Errorf("watchlist.store must be \"memory\" or \"badger\", got %q", c.Watchlist.Store)
	}

	if c.TMDB.BaseURL == "" || !strings.HasPrefix(c.TMDB.BaseURL, "http") {
		return fmt.Errorf("tmdb.base_url must be an http(s) URL, got %q", c.TMDB.BaseURL)
	}
	if c.TMDB.RateLimit <= 0 {
		return errors.New("tmdb.rate_limit must be positive")
	}

	if c.OpenAI.Model == "" {
		return errors.New("openai.model must not be empty")
	}
	if c.OpenAI.Timeout <= 0 {
		return errors.New("openai.timeout must be positive")
	}

	return nil
}
