// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package conversation

import (
	"fmt"

	"github.com/gabrielvik/film-recommendations/internal/config"
	"github.com/gabrielvik/film-recommendations/internal/logging"
)

// NewStore creates a session store from configuration.
func NewStore(cfg *config.SessionsConfig) (Store, error) {
	switch cfg.Store {
	case "memory":
		logging.Info().Dur("ttl", cfg.TTL).Msg("Using in-memory session store")
		return NewMemoryStore(cfg.TTL), nil
	case "badger":
		logging.Info().Str("path", cfg.Path).Dur("ttl", cfg.TTL).Msg("Using Badger session store")
		return NewBadgerStore(cfg.Path, cfg.TTL)
	default:
		return nil, fmt.Errorf("unknown session store backend: %q", cfg.Store)
	}
}
