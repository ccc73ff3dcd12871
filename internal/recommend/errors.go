// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package recommend

import "errors"

var (
	// ErrMalformedCompletion indicates the completion backend returned
	// text that does not parse as the requested JSON shape. The whole
	// recommend call fails; no salvage parsing is attempted.
	ErrMalformedCompletion = errors.New("completion output is not the expected JSON shape")

	// ErrInvalidContentType indicates a mixed-content request with both
	// the movie and series flags disabled.
	ErrInvalidContentType = errors.New("at least one of movies or series must be included")
)
