// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with defaults failed: %v", err)
	}
	if cfg.Server.Port != 8085 {
		t.Errorf("expected default port 8085, got %d", cfg.Server.Port)
	}
	if cfg.Security.AuthMode != "none" {
		t.Errorf("expected default auth mode none, got %q", cfg.Security.AuthMode)
	}
	if cfg.Sessions.Store != "memory" || cfg.Sessions.TTL != 2*time.Hour {
		t.Errorf("unexpected session defaults: %+v", cfg.Sessions)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9001")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("TMDB_API_KEY", "tmdb-test")
	t.Setenv("SESSIONS_TTL", "30m")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("expected port 9001, got %d", cfg.Server.Port)
	}
	if cfg.OpenAI.APIKey != "sk-test" {
		t.Errorf("OPENAI_API_KEY alias not applied: %q", cfg.OpenAI.APIKey)
	}
	if cfg.TMDB.APIKey != "tmdb-test" {
		t.Errorf("TMDB_API_KEY alias not applied: %q", cfg.TMDB.APIKey)
	}
	if cfg.Sessions.TTL != 30*time.Minute {
		t.Errorf("expected 30m TTL, got %v", cfg.Sessions.TTL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("LOG_LEVEL alias not applied: %q", cfg.Logging.Level)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "server:\n  port: 9100\nsessions:\n  ttl: 45m\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("expected port 9100 from file, got %d", cfg.Server.Port)
	}
	if cfg.Sessions.TTL != 45*time.Minute {
		t.Errorf("expected 45m TTL from file, got %v", cfg.Sessions.TTL)
	}
}

func TestEnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9100\n"), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("SERVER_PORT", "9200")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != 9200 {
		t.Errorf("env should override file, got %d", cfg.Server.Port)
	}
}

func TestCORSOriginsFromCommaSeparatedEnv(t *testing.T) {
	t.Setenv("SECURITY_CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Security.CORSOrigins) != 2 ||
		cfg.Security.CORSOrigins[0] != "https://a.example" ||
		cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins: %v", cfg.Security.CORSOrigins)
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"SECURITY_JWT_SECRET", "security.jwt_secret"},
		{"TMDB_RATE_LIMIT", "tmdb.rate_limit"},
		{"HTTP_PORT", "server.port"},
		{"PATH", ""},
		{"HOME", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.in); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config { return defaultConfig() }

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults pass", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"bad auth mode", func(c *Config) { c.Security.AuthMode = "basic" }, "auth_mode"},
		{"jwt without secret", func(c *Config) { c.Security.AuthMode = "jwt" }, "jwt_secret"},
		{"jwt short secret", func(c *Config) {
			c.Security.AuthMode = "jwt"
			c.Security.JWTSecret = "short"
		}, "32 characters"},
		{"jwt without admin", func(c *Config) {
			c.Security.AuthMode = "jwt"
			c.Security.JWTSecret = strings.Repeat("x", 32)
		}, "admin_username"},
		{"unknown session store", func(c *Config) { c.Sessions.Store = "redis" }, "sessions.store"},
		{"badger without path", func(c *Config) { c.Sessions.Store = "badger" }, "sessions.path"},
		{"zero ttl", func(c *Config) { c.Sessions.TTL = 0 }, "sessions.ttl"},
		{"unknown watchlist store", func(c *Config) { c.Watchlist.Store = "redis" }, "watchlist.store"},
		{"bad tmdb url", func(c *Config) { c.TMDB.BaseURL = "ftp://x" }, "tmdb.base_url"},
		{"zero rate limit", func(c *Config) { c.TMDB.RateLimit = 0 }, "rate_limit"},
		{"empty model", func(c *Config) { c.OpenAI.Model = "" }, "openai.model"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("expected valid config, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
