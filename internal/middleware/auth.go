// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication and
// request throttling.
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/halcyonsec/siteapi/internal/auth"
)

// ContextKey is a typed key for request context values.
type ContextKey string

// ContextKeyIdentity is the context key for the authenticated admin identity.
const ContextKeyIdentity ContextKey = "identity"

// Identity describes the authenticated admin resolved from a bearer token.
type Identity struct {
	UserID int64
	Email  string
}

// APIError represents a JSON error response for the API.
type APIError struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// WriteAPIError writes a JSON error response.
func WriteAPIError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	apiErr := APIError{}
	apiErr.Error.Code = code
	apiErr.Error.Message = message
	apiErr.Error.Details = details

	_ = json.NewEncoder(w).Encode(apiErr)
}

// Authenticate parses the Authorization header and verifies the bearer token.
// Returns nil when the header is absent, malformed, or the token does not
// verify. It never writes to the response.
func Authenticate(r *http.Request, tokens *auth.TokenService) *Identity {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil
	}

	rawToken := parts[1]
	if rawToken == "" {
		return nil
	}

	claims, err := tokens.Verify(rawToken)
	if err != nil {
		return nil
	}

	return &Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
	}
}

// RequireAuth creates middleware that rejects requests without a valid
// bearer token. The resolved identity is added to the request context.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := Authenticate(r, tokens)
			if identity == nil {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid bearer token", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyIdentity, *identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity retrieves the authenticated identity from the request context.
// Returns nil if the request was not authenticated.
func GetIdentity(r *http.Request) *Identity {
	identity, ok := r.Context().Value(ContextKeyIdentity).(Identity)
	if !ok {
		return nil
	}
	return &identity
}
