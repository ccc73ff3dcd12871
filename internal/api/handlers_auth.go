// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package api

import (
	"net/http"

	"github.com/gabrielvik/film-recommendations/internal/logging"
)

type loginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=1,max=200"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

// Login handles POST /api/v1/auth/login, exchanging credentials for a JWT.
// Only reachable when auth mode is "jwt".
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	if err := h.verifier.Verify(req.Username, req.Password); err != nil {
		logging.Warn().Str("username", sanitizeLogValue(req.Username)).Msg("Login attempt failed")
		respondError(w, r, http.StatusUnauthorized, "AUTHENTICATION_ERROR", "Invalid username or password", nil)
		return
	}

	token, err := h.jwt.GenerateToken(req.Username)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresIn: int64(h.jwt.TokenLifetime().Seconds()),
	})
}
