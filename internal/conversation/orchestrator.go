// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

/*
orchestrator.go - Conversation Orchestrator

Owns the per-session state machine. Every operation is a two-phase
update: phase one mutates session state and captures the prompt to
send upstream, the aggregator call runs outside the per-session lock,
and phase two merges the results back in. Holding the lock across a
network round trip would serialize unrelated requests to the same
session behind upstream latency.

Merge policy, deliberately asymmetric: ContinueSession replaces the
working set wholesale, while exclude-triggered backfill and
like-triggered similarity fetches append. Unifying the two would be a
product behavior change, not a cleanup.
*/

package conversation

import (
	"context"

	"github.com/gabrielvik/film-recommendations/internal/logging"
	"github.com/gabrielvik/film-recommendations/internal/metrics"
	"github.com/gabrielvik/film-recommendations/internal/models"
)

// minVisibleRecommendations is the working-set size below which an
// exclusion triggers a backfill fetch.
const minVisibleRecommendations = 3

// Recommender is the slice of the aggregator the orchestrator uses.
type Recommender interface {
	GetRecommendations(ctx context.Context, prompt string) ([]models.Recommendation, error)
}

// Orchestrator drives the session lifecycle. It is the only component
// that mutates sessions.
type Orchestrator struct {
	store       Store
	recommender Recommender
}

// NewOrchestrator creates an orchestrator over a store and aggregator.
func NewOrchestrator(store Store, recommender Recommender) *Orchestrator {
	return &Orchestrator{store: store, recommender: recommender}
}

// StartSession creates a session from an initial prompt and populates
// its working set. The prompt must already be validated non-empty by
// the transport layer.
func (o *Orchestrator) StartSession(ctx context.Context, prompt string) (*Session, error) {
	session := NewSession(prompt)

	recs, err := o.recommender.GetRecommendations(ctx, prompt)
	if err != nil {
		return nil, err
	}
	session.Current = dedupByID(recs)
	session.RememberTitles(session.Current)

	if err := o.store.Insert(ctx, session); err != nil {
		return nil, err
	}

	metrics.SessionsStarted.Inc()
	metrics.SessionsActive.Inc()
	logging.Info().
		Str("session_id", session.ID).
		Int("recommendations", len(session.Current)).
		Msg("Conversation session started")

	return session, nil
}

// ContinueSession appends a prompt to the session and replaces the
// working set with fresh results for the full accumulated context.
func (o *Orchestrator) ContinueSession(ctx context.Context, sessionID, newPrompt string) (*Session, error) {
	var composite string
	if _, err := o.store.Update(ctx, sessionID, func(s *Session) error {
		s.PromptHistory = append(s.PromptHistory, newPrompt)
		s.ActiveCriteria = newPrompt
		composite = buildCompositePrompt(s, newPrompt)
		return nil
	}); err != nil {
		return nil, err
	}

	recs, err := o.recommender.GetRecommendations(ctx, composite)
	if err != nil {
		return nil, err
	}

	return o.store.Update(ctx, sessionID, func(s *Session) error {
		fresh := make([]models.Recommendation, 0, len(recs))
		for _, r := range dedupByID(recs) {
			if s.IsExcluded(r.ID) {
				continue
			}
			fresh = append(fresh, r)
		}
		// Full replacement, unlike the additive merges below.
		s.Current = fresh
		s.RememberTitles(fresh)
		return nil
	})
}

// ExcludeMovie rejects an id for the rest of the session and removes
// it from the working set. When the set drops below the minimum, a
// backfill fetch tops it up. A failed backfill does not undo the
// exclusion; the user's rejection always sticks.
func (o *Orchestrator) ExcludeMovie(ctx context.Context, sessionID string, id int) (*Session, error) {
	var backfillPrompt string
	var needBackfill bool

	updated, err := o.store.Update(ctx, sessionID, func(s *Session) error {
		s.AddExcluded(id)
		s.Current = removeByID(s.Current, id)
		needBackfill = len(s.Current) < minVisibleRecommendations
		if needBackfill {
			backfillPrompt = buildBackfillPrompt(s)
		}
		return nil
	})
	if err != nil || !needBackfill {
		return updated, err
	}

	recs, err := o.recommender.GetRecommendations(ctx, backfillPrompt)
	if err != nil {
		logging.Warn().Err(err).Str("session_id", sessionID).Msg("Backfill after exclusion failed")
		return updated, nil
	}

	return o.appendNew(ctx, sessionID, recs)
}

// LikeMovie records a like. When the liked id is in the working set,
// a similarity fetch appends related titles; liking something outside
// the active set is recorded without fetching.
func (o *Orchestrator) LikeMovie(ctx context.Context, sessionID string, id int) (*Session, error) {
	var similarityPrompt string
	var fetch bool

	updated, err := o.store.Update(ctx, sessionID, func(s *Session) error {
		s.AddLiked(id)
		for _, r := range s.Current {
			if r.ID == id {
				fetch = true
				similarityPrompt = buildSimilarityPrompt(s, TitleYear{Title: r.Title, Year: r.Year})
				break
			}
		}
		return nil
	})
	if err != nil || !fetch {
		return updated, err
	}

	recs, err := o.recommender.GetRecommendations(ctx, similarityPrompt)
	if err != nil {
		logging.Warn().Err(err).Str("session_id", sessionID).Msg("Similarity fetch after like failed")
		return updated, nil
	}

	return o.appendNew(ctx, sessionID, recs)
}

// GetSession is a pure read.
func (o *Orchestrator) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	return o.store.Get(ctx, sessionID)
}

// appendNew merges fetched recommendations into the working set,
// skipping excluded ids and ids already present.
func (o *Orchestrator) appendNew(ctx context.Context, sessionID string, recs []models.Recommendation) (*Session, error) {
	return o.store.Update(ctx, sessionID, func(s *Session) error {
		for _, r := range recs {
			if s.IsExcluded(r.ID) || s.InCurrent(r.ID) {
				continue
			}
			s.Current = append(s.Current, r)
			s.Titles[r.ID] = TitleYear{Title: r.Title, Year: r.Year}
		}
		return nil
	})
}

func removeByID(recs []models.Recommendation, id int) []models.Recommendation {
	out := recs[:0]
	for _, r := range recs {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

func dedupByID(recs []models.Recommendation) []models.Recommendation {
	seen := make(map[int]struct{}, len(recs))
	out := make([]models.Recommendation, 0, len(recs))
	for _, r := range recs {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	return out
}
