// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

// Package conversation implements the recommendation session state
// machine: per-session prompt history, exclusions, likes, and the
// working set of recommendations, with an orchestrator that composes
// prompts from accumulated context and merges aggregator results back
// into session state.
package conversation

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/gabrielvik/film-recommendations/internal/models"
)

// TitleYear is the display data retained for every recommendation a
// session has ever shown. Prompt building needs titles for excluded
// and liked ids even after those entries leave the working set.
type TitleYear struct {
	Title string `json:"title"`
	Year  int    `json:"year"`
}

// Session is one user's ongoing recommendation conversation, keyed by
// an opaque id. Sessions are mutated only through the Orchestrator.
type Session struct {
	// ID is the opaque session identifier, generated at creation.
	ID string `json:"session_id"`

	// PromptHistory holds every prompt submitted in this session, in
	// order. The first entry is the original request.
	PromptHistory []string `json:"prompt_history"`

	// ExcludedIDs holds ids the user has rejected. Once added, an id
	// is never removed within the session.
	ExcludedIDs []int `json:"excluded_ids"`

	// LikedIDs holds ids the user has liked.
	LikedIDs []int `json:"liked_ids"`

	// ActiveCriteria is the most recently applied prompt.
	ActiveCriteria string `json:"active_criteria"`

	// Current is the working set of recommendations presented to the
	// user. Never contains an excluded id, never contains duplicates.
	Current []models.Recommendation `json:"current_recommendations"`

	// Titles indexes id to display data for everything the session
	// has shown, including entries since removed from Current.
	Titles map[int]TitleYear `json:"titles"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewSession creates a session for an initial prompt. The expiry is
// stamped by the store on insert; the store owns the TTL policy.
func NewSession(prompt string) *Session {
	now := time.Now()
	return &Session{
		ID:             generateSessionID(),
		PromptHistory:  []string{prompt},
		ExcludedIDs:    []int{},
		LikedIDs:       []int{},
		ActiveCriteria: prompt,
		Current:        []models.Recommendation{},
		Titles:         make(map[int]TitleYear),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// generateSessionID generates a cryptographically secure session ID.
func generateSessionID() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to less secure but still random ID
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(bytes)
}

// IsExpired returns true if the session has passed its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch extends the expiry and stamps the update time. The TTL slides
// on every mutating operation.
func (s *Session) Touch(ttl time.Duration) {
	now := time.Now()
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(ttl)
}

// IsExcluded reports whether an id has been rejected in this session.
func (s *Session) IsExcluded(id int) bool {
	for _, e := range s.ExcludedIDs {
		if e == id {
			return true
		}
	}
	return false
}

// IsLiked reports whether an id has been liked in this session.
func (s *Session) IsLiked(id int) bool {
	for _, l := range s.LikedIDs {
		if l == id {
			return true
		}
	}
	return false
}

// AddExcluded records an exclusion. Idempotent.
func (s *Session) AddExcluded(id int) {
	if !s.IsExcluded(id) {
		s.ExcludedIDs = append(s.ExcludedIDs, id)
	}
}

// AddLiked records a like. Idempotent.
func (s *Session) AddLiked(id int) {
	if !s.IsLiked(id) {
		s.LikedIDs = append(s.LikedIDs, id)
	}
}

// InCurrent reports whether an id is in the working set.
func (s *Session) InCurrent(id int) bool {
	for _, r := range s.Current {
		if r.ID == id {
			return true
		}
	}
	return false
}

// RememberTitles indexes display data for a batch of recommendations.
func (s *Session) RememberTitles(recs []models.Recommendation) {
	for _, r := range recs {
		s.Titles[r.ID] = TitleYear{Title: r.Title, Year: r.Year}
	}
}

// Clone returns a deep copy. Stores hand out and accept copies only,
// so callers can never mutate stored state outside an Update.
func (s *Session) Clone() *Session {
	copied := &Session{
		ID:             s.ID,
		ActiveCriteria: s.ActiveCriteria,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
		ExpiresAt:      s.ExpiresAt,
	}
	copied.PromptHistory = make([]string, len(s.PromptHistory))
	copy(copied.PromptHistory, s.PromptHistory)
	copied.ExcludedIDs = make([]int, len(s.ExcludedIDs))
	copy(copied.ExcludedIDs, s.ExcludedIDs)
	copied.LikedIDs = make([]int, len(s.LikedIDs))
	copy(copied.LikedIDs, s.LikedIDs)
	copied.Current = make([]models.Recommendation, len(s.Current))
	copy(copied.Current, s.Current)
	copied.Titles = make(map[int]TitleYear, len(s.Titles))
	for id, ty := range s.Titles {
		copied.Titles[id] = ty
	}
	return copied
}
