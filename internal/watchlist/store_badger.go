// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package watchlist

import (
	"context"
	"errors"
	"fmt"
	"sort"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/gabrielvik/film-recommendations/internal/models"
)

// BadgerStore persists watchlists in BadgerDB so they survive
// restarts. Keys are "watchlist:<username>:<movieID>", which makes a
// user's whole list one prefix scan.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens (or creates) a Badger-backed watchlist store.
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger watchlist store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func entryKey(username string, movieID int) []byte {
	return []byte(fmt.Sprintf("watchlist:%s:%d", username, movieID))
}

func userPrefix(username string) []byte {
	return []byte(fmt.Sprintf("watchlist:%s:", username))
}

func (s *BadgerStore) Add(_ context.Context, username string, entry models.WatchlistEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal watchlist entry: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(entryKey(username, entry.MovieID), data)
	})
}

func (s *BadgerStore) Remove(_ context.Context, username string, movieID int) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(entryKey(username, movieID))
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil
	}
	return err
}

func (s *BadgerStore) List(_ context.Context, username string) ([]models.WatchlistEntry, error) {
	var out []models.WatchlistEntry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := userPrefix(username)
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var entry models.WatchlistEntry
				if err := json.Unmarshal(val, &entry); err != nil {
					return err
				}
				out = append(out, entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].AddedAt != out[j].AddedAt {
			return out[i].AddedAt < out[j].AddedAt
		}
		return out[i].MovieID < out[j].MovieID
	})
	return out, nil
}

func (s *BadgerStore) Close() error {
	return s.db.Close()
}
