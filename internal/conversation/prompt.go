// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package conversation

import (
	"fmt"
	"strings"
)

// buildCompositePrompt reconstructs the session context for the
// aggregator: the original request, the titles the user rejected and
// liked, and the new request. Excluded and liked ids are rendered only
// when the session still has display data for them, which covers every
// id that was ever in the working set.
func buildCompositePrompt(s *Session, newPrompt string) string {
	var b strings.Builder

	b.WriteString("Original request: ")
	if len(s.PromptHistory) > 0 {
		b.WriteString(s.PromptHistory[0])
	}

	if disliked := formatTitles(s, s.ExcludedIDs); disliked != "" {
		b.WriteString("\nDisliked: ")
		b.WriteString(disliked)
	}
	if liked := formatTitles(s, s.LikedIDs); liked != "" {
		b.WriteString("\nLiked: ")
		b.WriteString(liked)
	}

	b.WriteString("\nNew request: ")
	b.WriteString(newPrompt)
	return b.String()
}

// buildBackfillPrompt asks for replacements after an exclusion thinned
// the working set.
func buildBackfillPrompt(s *Session) string {
	return buildCompositePrompt(s, "Recommend more titles matching the original request. Do not recommend anything listed as disliked, and favor anything similar to the liked titles.")
}

// buildSimilarityPrompt asks for titles similar to a liked entry.
func buildSimilarityPrompt(s *Session, liked TitleYear) string {
	return buildCompositePrompt(s, fmt.Sprintf("Recommend more titles like %s.", formatTitle(liked)))
}

func formatTitles(s *Session, ids []int) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if ty, ok := s.Titles[id]; ok {
			parts = append(parts, formatTitle(ty))
		}
	}
	return strings.Join(parts, ", ")
}

func formatTitle(ty TitleYear) string {
	if ty.Year > 0 {
		return fmt.Sprintf("%s (%d)", ty.Title, ty.Year)
	}
	return ty.Title
}
