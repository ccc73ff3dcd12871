// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package conversation

import (
	"strings"
	"testing"
)

func TestBuildCompositePrompt(t *testing.T) {
	s := NewSession("dark sci-fi thrillers")
	s.Titles = map[int]TitleYear{
		1: {Title: "A", Year: 2010},
		2: {Title: "B", Year: 2011},
		3: {Title: "C", Year: 2012},
	}
	s.ExcludedIDs = []int{2}
	s.LikedIDs = []int{1, 3}

	got := buildCompositePrompt(s, "now something funnier")

	want := "Original request: dark sci-fi thrillers\n" +
		"Disliked: B (2011)\n" +
		"Liked: A (2010), C (2012)\n" +
		"New request: now something funnier"
	if got != want {
		t.Errorf("composite prompt mismatch:\n got: %q\nwant: %q", got, want)
	}
}

func TestBuildCompositePromptOmitsEmptySections(t *testing.T) {
	s := NewSession("westerns")

	got := buildCompositePrompt(s, "with more gunfights")
	if strings.Contains(got, "Disliked:") || strings.Contains(got, "Liked:") {
		t.Errorf("empty sections should be omitted: %q", got)
	}
}

func TestBuildCompositePromptSkipsUnknownTitles(t *testing.T) {
	// Ids without display data (never shown in this session) are left
	// out of the prompt rather than rendered as blanks.
	s := NewSession("westerns")
	s.ExcludedIDs = []int{99}
	s.LikedIDs = []int{1}
	s.Titles = map[int]TitleYear{1: {Title: "A", Year: 2010}}

	got := buildCompositePrompt(s, "more")
	if strings.Contains(got, "Disliked:") {
		t.Errorf("unknown excluded title should be omitted: %q", got)
	}
	if !strings.Contains(got, "Liked: A (2010)") {
		t.Errorf("known liked title missing: %q", got)
	}
}

func TestFormatTitleWithoutYear(t *testing.T) {
	if got := formatTitle(TitleYear{Title: "A"}); got != "A" {
		t.Errorf("expected bare title for unknown year, got %q", got)
	}
}
