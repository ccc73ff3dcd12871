// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package conversation

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound is returned when a session id is absent from the
// store or has expired. Expiry is indistinguishable from absence by
// design: the client retries with a fresh session either way.
var ErrSessionNotFound = errors.New("session not found")

// Store is concurrency-safe keyed storage for sessions.
//
// Concurrency contract: operations on different session ids never
// block one another. Update serializes the whole read-modify-write
// for a single id, so concurrent mutations of the same session cannot
// lose updates.
type Store interface {
	// Insert adds or overwrites the entry for session.ID.
	Insert(ctx context.Context, session *Session) error

	// Get returns a copy of the session, or ErrSessionNotFound.
	Get(ctx context.Context, id string) (*Session, error)

	// Update applies fn to a copy of the stored session and writes the
	// result back, all while holding the per-id lock. Returns the
	// updated session copy. If fn returns an error nothing is written.
	Update(ctx context.Context, id string, fn func(*Session) error) (*Session, error)

	// CleanupExpired removes expired sessions, returning the count.
	CleanupExpired(ctx context.Context) (int, error)

	// Close releases backend resources.
	Close() error
}

// keyedMutex provides one mutex per active key. Entries are reference
// counted and removed when the last holder unlocks, so the map does
// not grow with the total number of sessions ever seen.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyLock)}
}

func (k *keyedMutex) lock(key string) {
	k.mu.Lock()
	entry, ok := k.locks[key]
	if !ok {
		entry = &keyLock{}
		k.locks[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	entry.mu.Lock()
}

func (k *keyedMutex) unlock(key string) {
	k.mu.Lock()
	entry := k.locks[key]
	entry.refs--
	if entry.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	entry.mu.Unlock()
}

// MemoryStore is an in-memory Store. Suitable for single-instance
// deployments; use the Badger store when sessions must survive
// restarts.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	keys     *keyedMutex
	ttl      time.Duration
}

// NewMemoryStore creates an in-memory session store with a sliding TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		keys:     newKeyedMutex(),
		ttl:      ttl,
	}
}

// Insert adds or overwrites a session, stamping its expiry. A deep
// copy is stored; the caller's session gets the expiry stamp too.
func (s *MemoryStore) Insert(_ context.Context, session *Session) error {
	session.Touch(s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session.Clone()
	return nil
}

// Get returns a copy of the session. Expired sessions read as absent.
func (s *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok || session.IsExpired() {
		return nil, ErrSessionNotFound
	}
	return session.Clone(), nil
}

// Update applies fn under the per-id lock and slides the TTL.
func (s *MemoryStore) Update(_ context.Context, id string, fn func(*Session) error) (*Session, error) {
	s.keys.lock(id)
	defer s.keys.unlock(id)

	s.mu.RLock()
	stored, ok := s.sessions[id]
	if ok && !stored.IsExpired() {
		stored = stored.Clone()
	} else {
		ok = false
	}
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	if err := fn(stored); err != nil {
		return nil, err
	}
	stored.Touch(s.ttl)

	s.mu.Lock()
	s.sessions[id] = stored
	s.mu.Unlock()

	return stored.Clone(), nil
}

// CleanupExpired removes all expired sessions.
func (s *MemoryStore) CleanupExpired(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for id, session := range s.sessions {
		if session.IsExpired() {
			delete(s.sessions, id)
			count++
		}
	}
	return count, nil
}

// Len returns the number of stored sessions, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
