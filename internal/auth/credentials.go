// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/gabrielvik/film-recommendations/internal/config"
)

// ErrInvalidCredentials is returned for any username or password
// mismatch. The cause is never distinguished to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Verifier checks login credentials against the configured admin
// account. Passwords are stored as bcrypt hashes in config.
type Verifier struct {
	username     string
	passwordHash string
}

// NewVerifier creates a credential verifier from security config.
func NewVerifier(cfg *config.SecurityConfig) *Verifier {
	return &Verifier{
		username:     cfg.AdminUsername,
		passwordHash: cfg.AdminPasswordHash,
	}
}

// Verify checks a username/password pair. Both the username compare
// and the bcrypt compare run on every call so response timing does
// not reveal which field was wrong.
func (v *Verifier) Verify(username, password string) error {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(v.passwordHash), []byte(password))

	if !usernameOK || passwordErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword produces a bcrypt hash for storing in configuration.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
