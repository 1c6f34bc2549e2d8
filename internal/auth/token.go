// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for every rejection: malformed
// token, bad signature, or expiry. Callers must not distinguish reasons.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the identity encoded in an admin session token.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"uid"`
	Email  string `json:"email"`
}

// TokenService issues and verifies signed, time-limited session tokens.
// Sessions are stateless: tokens are never stored server-side.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service with the given signing secret and
// token lifetime. The secret is validated at config load; an empty secret
// here is a programming error, not a runtime condition.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	if len(secret) == 0 {
		panic("auth: token service requires a signing secret")
	}
	return &TokenService{secret: secret, ttl: ttl}
}

// Issue produces a signed HS256 token for the given identity.
func (s *TokenService) Issue(userID int64, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
		Email:  email,
	})

	return token.SignedString(s.secret)
}

// Verify checks the signature and expiry of a token and returns its claims.
// All failures collapse into ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
