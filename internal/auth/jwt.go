// Film Recommendations - Conversational Movie & TV Discovery
// Copyright 2026 Gabriel Vik (gabrielvik)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gabrielvik/film-recommendations

// Package auth provides JWT issuance, validation, and the request
// authentication middleware.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gabrielvik/film-recommendations/internal/config"
)

// Claims are the JWT claims carried by access tokens.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTManager creates and validates access tokens. Tokens are signed
// with HMAC-SHA256 and are stateless: they cannot be revoked before
// expiry.
type JWTManager struct {
	secret   []byte
	lifetime time.Duration
}

// NewJWTManager creates a token manager from security configuration.
// The secret must be at least 32 characters; config validation
// enforces that before this is reached.
func NewJWTManager(cfg *config.SecurityConfig) (*JWTManager, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret is required but was empty")
	}
	return &JWTManager{
		secret:   []byte(cfg.JWTSecret),
		lifetime: cfg.TokenLifetime,
	}, nil
}

// GenerateToken issues a signed token for an authenticated user.
func (m *JWTManager) GenerateToken(username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken verifies a token's signature, algorithm, and time
// claims, returning the embedded claims. Rejecting non-HMAC signing
// methods guards against algorithm confusion.
func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// TokenLifetime returns the configured token validity duration.
func (m *JWTManager) TokenLifetime() time.Duration {
	return m.lifetime
}
