// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

// Package watchlist stores per-user saved titles.
package watchlist

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gabrielvik/film-recommendations/internal/config"
	"github.com/gabrielvik/film-recommendations/internal/models"
)

// Store is keyed storage of watchlist entries per user. Adding an
// entry that already exists overwrites it; removing a missing entry
// is a no-op.
type Store interface {
	Add(ctx context.Context, username string, entry models.WatchlistEntry) error
	Remove(ctx context.Context, username string, movieID int) error
	List(ctx context.Context, username string) ([]models.WatchlistEntry, error)
	Close() error
}

// NewStore creates a watchlist store from configuration.
func NewStore(cfg *config.WatchlistConfig) (Store, error) {
	switch cfg.Store {
	case "memory":
		return NewMemoryStore(), nil
	case "badger":
		return NewBadgerStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown watchlist store backend: %q", cfg.Store)
	}
}

// MemoryStore is an in-memory watchlist store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]map[int]models.WatchlistEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]map[int]models.WatchlistEntry)}
}

func (s *MemoryStore) Add(_ context.Context, username string, entry models.WatchlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userEntries, ok := s.entries[username]
	if !ok {
		userEntries = make(map[int]models.WatchlistEntry)
		s.entries[username] = userEntries
	}
	userEntries[entry.MovieID] = entry
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, username string, movieID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if userEntries, ok := s.entries[username]; ok {
		delete(userEntries, movieID)
	}
	return nil
}

// List returns the user's entries ordered by when they were added.
func (s *MemoryStore) List(_ context.Context, username string) ([]models.WatchlistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userEntries := s.entries[username]
	out := make([]models.WatchlistEntry, 0, len(userEntries))
	for _, e := range userEntries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AddedAt != out[j].AddedAt {
			return out[i].AddedAt < out[j].AddedAt
		}
		return out[i].MovieID < out[j].MovieID
	})
	return out, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
