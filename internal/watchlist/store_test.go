// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package watchlist

import (
	"context"
	"testing"

	"github.com/gabrielvik/film-recommendations/internal/models"
)

func entry(id int, title string, addedAt int64) models.WatchlistEntry {
	return models.WatchlistEntry{MovieID: id, Title: title, AddedAt: addedAt}
}

// exerciseStore runs the shared behavior suite against any backend.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	// Empty list for unknown user.
	list, err := store.List(ctx, "alice")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list, got %d entries", len(list))
	}

	// Entries come back ordered by AddedAt.
	if err := store.Add(ctx, "alice", entry(2, "B", 200)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := store.Add(ctx, "alice", entry(1, "A", 100)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	list, _ = store.List(ctx, "alice")
	if len(list) != 2 || list[0].MovieID != 1 || list[1].MovieID != 2 {
		t.Errorf("unexpected list order: %+v", list)
	}

	// Re-adding the same movie overwrites rather than duplicates.
	if err := store.Add(ctx, "alice", entry(1, "A updated", 100)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	list, _ = store.List(ctx, "alice")
	if len(list) != 2 {
		t.Errorf("expected overwrite, got %d entries", len(list))
	}
	if list[0].Title != "A updated" {
		t.Errorf("expected updated title, got %q", list[0].Title)
	}

	// Users are isolated from one another.
	if err := store.Add(ctx, "bob", entry(3, "C", 300)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	aliceList, _ := store.List(ctx, "alice")
	if len(aliceList) != 2 {
		t.Errorf("bob's entry leaked into alice's list: %+v", aliceList)
	}

	// Remove, and remove of a missing entry is a no-op.
	if err := store.Remove(ctx, "alice", 1); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := store.Remove(ctx, "alice", 999); err != nil {
		t.Fatalf("Remove of missing entry should be a no-op, got %v", err)
	}
	list, _ = store.List(ctx, "alice")
	if len(list) != 1 || list[0].MovieID != 2 {
		t.Errorf("unexpected list after remove: %+v", list)
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestBadgerStore(t *testing.T) {
	store, err := NewBadgerStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewBadgerStore failed: %v", err)
	}
	defer func() { _ = store.Close() }()
	exerciseStore(t, store)
}
