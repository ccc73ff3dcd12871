// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package conversation

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gabrielvik/film-recommendations/internal/models"
)

// fakeRecommender returns scripted batches in order and records every
// prompt it receives. failOn makes the n-th call (1-based) fail.
type fakeRecommender struct {
	mu      sync.Mutex
	batches [][]models.Recommendation
	failOn  int
	calls   int
	prompts []string
}

func (f *fakeRecommender) GetRecommendations(_ context.Context, prompt string) ([]models.Recommendation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.failOn != 0 && f.calls == f.failOn {
		return nil, errors.New("upstream unavailable")
	}
	if len(f.batches) == 0 {
		return []models.Recommendation{}, nil
	}
	next := f.batches[0]
	f.batches = f.batches[1:]
	return next, nil
}

func (f *fakeRecommender) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeRecommender) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return ""
	}
	return f.prompts[len(f.prompts)-1]
}

func rec(id int, title string, year int) models.Recommendation {
	return models.Recommendation{ID: id, Title: title, Year: year, Type: models.ContentTypeMovie}
}

func newTestOrchestrator(batches ...[]models.Recommendation) (*Orchestrator, *fakeRecommender) {
	fake := &fakeRecommender{batches: batches}
	store := NewMemoryStore(time.Hour)
	return NewOrchestrator(store, fake), fake
}

func TestStartSession(t *testing.T) {
	orch, _ := newTestOrchestrator([]models.Recommendation{
		rec(1, "A", 2010), rec(2, "B", 2011), rec(3, "C", 2012),
	})

	session, err := orch.StartSession(context.Background(), "sci-fi thrillers")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	if session.ID == "" {
		t.Error("expected a generated session id")
	}
	if len(session.PromptHistory) != 1 || session.PromptHistory[0] != "sci-fi thrillers" {
		t.Errorf("unexpected prompt history: %v", session.PromptHistory)
	}
	if session.ActiveCriteria != "sci-fi thrillers" {
		t.Errorf("unexpected active criteria: %q", session.ActiveCriteria)
	}
	if len(session.Current) != 3 {
		t.Errorf("expected 3 recommendations, got %d", len(session.Current))
	}
	if len(session.ExcludedIDs) != 0 || len(session.LikedIDs) != 0 {
		t.Error("expected empty excluded and liked sets")
	}

	// The session is retrievable by its id.
	got, err := orch.GetSession(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.ID != session.ID {
		t.Errorf("round-trip id mismatch: %q vs %q", got.ID, session.ID)
	}
}

func TestUnknownSessionFailsClosed(t *testing.T) {
	orch, fake := newTestOrchestrator()
	ctx := context.Background()

	ops := map[string]func() error{
		"continue": func() error { _, err := orch.ContinueSession(ctx, "no-such-id", "x"); return err },
		"exclude":  func() error { _, err := orch.ExcludeMovie(ctx, "no-such-id", 1); return err },
		"like":     func() error { _, err := orch.LikeMovie(ctx, "no-such-id", 1); return err },
		"get":      func() error { _, err := orch.GetSession(ctx, "no-such-id"); return err },
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, ErrSessionNotFound) {
			t.Errorf("%s on unknown session: expected ErrSessionNotFound, got %v", name, err)
		}
	}
	if fake.callCount() != 0 {
		t.Errorf("expected no aggregator calls for unknown sessions, got %d", fake.callCount())
	}
}

func TestExcludeRemovesFromViewAndBackfills(t *testing.T) {
	orch, fake := newTestOrchestrator(
		[]models.Recommendation{rec(1, "A", 2010), rec(2, "B", 2011), rec(3, "C", 2012)},
		[]models.Recommendation{rec(4, "D", 2013), rec(2, "B", 2011), rec(1, "A", 2010)},
	)
	ctx := context.Background()

	session, err := orch.StartSession(ctx, "thrillers")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	updated, err := orch.ExcludeMovie(ctx, session.ID, 2)
	if err != nil {
		t.Fatalf("ExcludeMovie failed: %v", err)
	}

	if !updated.IsExcluded(2) {
		t.Error("expected id 2 in excluded set")
	}
	if updated.InCurrent(2) {
		t.Error("excluded id 2 still in working set")
	}
	if len(updated.Current) < 2 {
		t.Errorf("expected at least 2 entries after backfill, got %d", len(updated.Current))
	}
	// The backfill batch contained the excluded id and an id already
	// present; only the genuinely new id 4 may be appended.
	if !updated.InCurrent(4) {
		t.Error("expected backfilled id 4 in working set")
	}
	assertNoDuplicates(t, updated)
	assertNoExcludedVisible(t, updated)

	if fake.callCount() != 2 {
		t.Errorf("expected start + backfill calls, got %d", fake.callCount())
	}
	if !strings.Contains(fake.lastPrompt(), "Disliked: B (2011)") {
		t.Errorf("backfill prompt missing disliked title: %q", fake.lastPrompt())
	}
}

func TestExcludeIsIdempotent(t *testing.T) {
	orch, _ := newTestOrchestrator(
		[]models.Recommendation{rec(1, "A", 2010), rec(2, "B", 2011), rec(3, "C", 2012), rec(4, "D", 2013)},
	)
	ctx := context.Background()

	session, err := orch.StartSession(ctx, "thrillers")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	first, err := orch.ExcludeMovie(ctx, session.ID, 2)
	if err != nil {
		t.Fatalf("first exclude failed: %v", err)
	}
	second, err := orch.ExcludeMovie(ctx, session.ID, 2)
	if err != nil {
		t.Fatalf("second exclude failed: %v", err)
	}

	if len(first.ExcludedIDs) != 1 || len(second.ExcludedIDs) != 1 {
		t.Errorf("expected excluded set {2}, got %v then %v", first.ExcludedIDs, second.ExcludedIDs)
	}
}

func TestNoExcludedIDEverResurfaces(t *testing.T) {
	// Every subsequent batch keeps offering the excluded id 2.
	orch, _ := newTestOrchestrator(
		[]models.Recommendation{rec(1, "A", 2010), rec(2, "B", 2011), rec(3, "C", 2012)},
		[]models.Recommendation{rec(2, "B", 2011), rec(4, "D", 2013)},
		[]models.Recommendation{rec(2, "B", 2011), rec(5, "E", 2014)},
		[]models.Recommendation{rec(2, "B", 2011), rec(6, "F", 2015)},
	)
	ctx := context.Background()

	session, err := orch.StartSession(ctx, "thrillers")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	s, err := orch.ExcludeMovie(ctx, session.ID, 2)
	if err != nil {
		t.Fatalf("exclude failed: %v", err)
	}
	assertNoExcludedVisible(t, s)

	s, err = orch.ContinueSession(ctx, session.ID, "funnier")
	if err != nil {
		t.Fatalf("continue failed: %v", err)
	}
	assertNoExcludedVisible(t, s)

	s, err = orch.LikeMovie(ctx, session.ID, 5)
	if err != nil {
		t.Fatalf("like failed: %v", err)
	}
	assertNoExcludedVisible(t, s)
	assertNoDuplicates(t, s)
}

func TestContinueReplacesWorkingSet(t *testing.T) {
	// Continue is a wholesale replacement. Exclude and like append.
	// The asymmetry is deliberate product behavior; see DESIGN.md.
	orch, fake := newTestOrchestrator(
		[]models.Recommendation{rec(1, "A", 2010), rec(2, "B", 2011), rec(3, "C", 2012)},
		[]models.Recommendation{rec(7, "G", 2016), rec(8, "H", 2017)},
	)
	ctx := context.Background()

	session, err := orch.StartSession(ctx, "thrillers")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	updated, err := orch.ContinueSession(ctx, session.ID, "now make it funnier")
	if err != nil {
		t.Fatalf("ContinueSession failed: %v", err)
	}

	if len(updated.Current) != 2 || updated.Current[0].ID != 7 || updated.Current[1].ID != 8 {
		t.Errorf("expected working set replaced with [7 8], got %+v", updated.Current)
	}
	if len(updated.PromptHistory) != 2 {
		t.Errorf("expected 2 prompts in history, got %d", len(updated.PromptHistory))
	}
	if updated.ActiveCriteria != "now make it funnier" {
		t.Errorf("unexpected active criteria: %q", updated.ActiveCriteria)
	}

	composite := fake.lastPrompt()
	if !strings.Contains(composite, "Original request: thrillers") {
		t.Errorf("composite prompt missing original request: %q", composite)
	}
	if !strings.Contains(composite, "New request: now make it funnier") {
		t.Errorf("composite prompt missing new request: %q", composite)
	}
}

func TestContinueFiltersExcludedFromFreshResults(t *testing.T) {
	orch, _ := newTestOrchestrator(
		[]models.Recommendation{rec(1, "A", 2010), rec(2, "B", 2011), rec(3, "C", 2012), rec(4, "D", 2013)},
		[]models.Recommendation{rec(2, "B", 2011), rec(9, "I", 2018)},
	)
	ctx := context.Background()

	session, err := orch.StartSession(ctx, "thrillers")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	if _, err := orch.ExcludeMovie(ctx, session.ID, 2); err != nil {
		t.Fatalf("exclude failed: %v", err)
	}

	updated, err := orch.ContinueSession(ctx, session.ID, "more like these")
	if err != nil {
		t.Fatalf("continue failed: %v", err)
	}
	if updated.InCurrent(2) {
		t.Error("excluded id 2 resurfaced through continue")
	}
	if !updated.InCurrent(9) {
		t.Error("expected fresh id 9 in working set")
	}
}

func TestLikeTriggersSimilarityFetch(t *testing.T) {
	orch, fake := newTestOrchestrator(
		[]models.Recommendation{rec(1, "A", 2010), rec(2, "B", 2011), rec(3, "C", 2012)},
		[]models.Recommendation{rec(10, "J", 2019)},
	)
	ctx := context.Background()

	session, err := orch.StartSession(ctx, "thrillers")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	updated, err := orch.LikeMovie(ctx, session.ID, 1)
	if err != nil {
		t.Fatalf("LikeMovie failed: %v", err)
	}

	if !updated.IsLiked(1) {
		t.Error("expected id 1 in liked set")
	}
	if !updated.InCurrent(10) {
		t.Error("expected similarity result appended")
	}
	// Similarity fetch appends; the original entries stay.
	if !updated.InCurrent(1) || !updated.InCurrent(2) || !updated.InCurrent(3) {
		t.Errorf("expected original working set preserved, got %+v", updated.Current)
	}
	if !strings.Contains(fake.lastPrompt(), "A (2010)") {
		t.Errorf("similarity prompt should reference the liked title: %q", fake.lastPrompt())
	}
}

func TestLikeOutsideWorkingSetRecordsWithoutFetch(t *testing.T) {
	orch, fake := newTestOrchestrator(
		[]models.Recommendation{rec(1, "A", 2010), rec(2, "B", 2011), rec(3, "C", 2012)},
	)
	ctx := context.Background()

	session, err := orch.StartSession(ctx, "thrillers")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	callsBefore := fake.callCount()

	updated, err := orch.LikeMovie(ctx, session.ID, 999)
	if err != nil {
		t.Fatalf("LikeMovie failed: %v", err)
	}

	if !updated.IsLiked(999) {
		t.Error("expected like recorded")
	}
	if fake.callCount() != callsBefore {
		t.Error("expected no similarity fetch for an id outside the working set")
	}
	if len(updated.Current) != 3 {
		t.Errorf("expected working set untouched, got %d entries", len(updated.Current))
	}
}

func TestExclusionPersistsWhenBackfillFails(t *testing.T) {
	fake := &fakeRecommender{
		batches: [][]models.Recommendation{
			{rec(1, "A", 2010), rec(2, "B", 2011), rec(3, "C", 2012)},
		},
		failOn: 2,
	}
	orch := NewOrchestrator(NewMemoryStore(time.Hour), fake)
	ctx := context.Background()

	session, err := orch.StartSession(ctx, "thrillers")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	updated, err := orch.ExcludeMovie(ctx, session.ID, 2)
	if err != nil {
		t.Fatalf("expected exclusion to succeed despite backfill failure, got %v", err)
	}
	if !updated.IsExcluded(2) || updated.InCurrent(2) {
		t.Error("exclusion not applied")
	}
	if len(updated.Current) != 2 {
		t.Errorf("expected working set of 2 without backfill, got %d", len(updated.Current))
	}

	// The failure did not corrupt stored state.
	got, err := orch.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if !got.IsExcluded(2) {
		t.Error("exclusion not persisted")
	}
}

func TestExcludeSkipsBackfillWhenSetIsLarge(t *testing.T) {
	orch, fake := newTestOrchestrator(
		[]models.Recommendation{rec(1, "A", 2010), rec(2, "B", 2011), rec(3, "C", 2012), rec(4, "D", 2013)},
	)
	ctx := context.Background()

	session, err := orch.StartSession(ctx, "thrillers")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	callsBefore := fake.callCount()

	updated, err := orch.ExcludeMovie(ctx, session.ID, 4)
	if err != nil {
		t.Fatalf("ExcludeMovie failed: %v", err)
	}
	if fake.callCount() != callsBefore {
		t.Error("expected no backfill while 3 entries remain")
	}
	if len(updated.Current) != 3 {
		t.Errorf("expected 3 entries, got %d", len(updated.Current))
	}
}

func TestDedupOnBackfill(t *testing.T) {
	orch, _ := newTestOrchestrator(
		[]models.Recommendation{rec(1, "A", 2010), rec(2, "B", 2011), rec(3, "C", 2012)},
		[]models.Recommendation{rec(1, "A", 2010), rec(4, "D", 2013), rec(4, "D", 2013), rec(3, "C", 2012)},
	)
	ctx := context.Background()

	session, err := orch.StartSession(ctx, "thrillers")
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}
	updated, err := orch.ExcludeMovie(ctx, session.ID, 2)
	if err != nil {
		t.Fatalf("ExcludeMovie failed: %v", err)
	}
	assertNoDuplicates(t, updated)
}

func TestStartSessionPropagatesAggregatorFailure(t *testing.T) {
	fake := &fakeRecommender{failOn: 1}
	orch := NewOrchestrator(NewMemoryStore(time.Hour), fake)

	if _, err := orch.StartSession(context.Background(), "thrillers"); err == nil {
		t.Fatal("expected error when the aggregator fails at start")
	}
}

func assertNoDuplicates(t *testing.T, s *Session) {
	t.Helper()
	seen := make(map[int]struct{}, len(s.Current))
	for _, r := range s.Current {
		if _, dup := seen[r.ID]; dup {
			t.Errorf("duplicate id %d in working set %+v", r.ID, s.Current)
		}
		seen[r.ID] = struct{}{}
	}
}

func assertNoExcludedVisible(t *testing.T, s *Session) {
	t.Helper()
	for _, r := range s.Current {
		if s.IsExcluded(r.ID) {
			t.Errorf("excluded id %d present in working set", r.ID)
		}
	}
}
