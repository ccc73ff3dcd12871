// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/gabrielvik/film-recommendations/internal/logging"
)

const sessionKeyPrefix = "conversation:session:"

// BadgerStore is a Store backed by BadgerDB. Sessions survive process
// restarts; Badger's native TTL handles expiry of idle sessions.
//
// Per-id serialization still lives in the application layer: Badger
// transactions give atomic single writes, but the read-modify-write in
// Update spans an aggregator call boundary in the orchestrator, so the
// keyed mutex, not the transaction, is what prevents lost updates.
type BadgerStore struct {
	db   *badger.DB
	keys *keyedMutex
	ttl  time.Duration
}

// NewBadgerStore opens (or creates) a Badger-backed session store at
// the given path.
func NewBadgerStore(path string, ttl time.Duration) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Badger's own logger is too chatty for the default level

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger session store: %w", err)
	}

	return &BadgerStore{
		db:   db,
		keys: newKeyedMutex(),
		ttl:  ttl,
	}, nil
}

func sessionKey(id string) []byte {
	return []byte(sessionKeyPrefix + id)
}

// Insert adds or overwrites a session, stamping its expiry.
func (s *BadgerStore) Insert(_ context.Context, session *Session) error {
	session.Touch(s.ttl)

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(sessionKey(session.ID), data).WithTTL(s.ttl)
		return txn.SetEntry(entry)
	})
}

// Get returns the stored session, or ErrSessionNotFound.
func (s *BadgerStore) Get(_ context.Context, id string) (*Session, error) {
	var session Session
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &session)
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	// Badger TTL granularity is seconds; double-check our own stamp.
	if session.IsExpired() {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

// Update applies fn under the per-id lock, writing back with a fresh
// TTL on success.
func (s *BadgerStore) Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	s.keys.lock(id)
	defer s.keys.unlock(id)

	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(session); err != nil {
		return nil, err
	}

	// Insert refreshes the TTL, which gives sessions their sliding expiry.
	if err := s.Insert(ctx, session); err != nil {
		return nil, err
	}
	return session.Clone(), nil
}

// CleanupExpired triggers value log garbage collection. Badger expires
// session entries itself via the per-entry TTL, so there is nothing to
// scan; reclaiming log space is the only periodic work left.
func (s *BadgerStore) CleanupExpired(_ context.Context) (int, error) {
	err := s.db.RunValueLogGC(0.5)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		logging.Warn().Err(err).Msg("Badger value log GC failed")
	}
	return 0, nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
