// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/halcyonsec/siteapi/internal/auth"
	"github.com/halcyonsec/siteapi/internal/middleware"
	"github.com/halcyonsec/siteapi/internal/model"
	"github.com/halcyonsec/siteapi/internal/store"
)

const minPasswordLength = 8

// AuthHandler handles admin registration, login and identity lookup.
type AuthHandler struct {
	users       *store.UserStore
	tokens      *auth.TokenService
	adminSecret string
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(users *store.UserStore, tokens *auth.TokenService, adminSecret string) *AuthHandler {
	return &AuthHandler{
		users:       users,
		tokens:      tokens,
		adminSecret: adminSecret,
	}
}

type registerRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	SecretPass string `json:"secretPass"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string          `json:"token"`
	User  model.AdminUser `json:"user"`
}

// Register handles POST /api/admin/register.
// Registration is gated by a shared secret so the endpoint can stay public.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, err.Error(), nil)
		return
	}

	if req.SecretPass != h.adminSecret {
		slog.Warn("admin registration rejected", "email", req.Email)
		WriteUnauthorized(w, "Invalid registration secret")
		return
	}

	details := map[string]string{}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if !isValidEmail(req.Email) {
		details["email"] = "A valid email address is required"
	}
	if len(req.Password) < minPasswordLength {
		details["password"] = "Password must be at least 8 characters"
	}
	if req.Name == "" {
		details["name"] = "Name is required"
	}
	if len(details) > 0 {
		WriteBadRequest(w, "Validation failed", details)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		WriteInternalError(w, "Failed to create user")
		return
	}

	user, err := h.users.Create(r.Context(), req.Email, hash, req.Name)
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			WriteConflict(w, "An account with this email already exists")
			return
		}
		slog.Error("failed to create admin user", "error", err)
		WriteInternalError(w, "Failed to create user")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		WriteInternalError(w, "Failed to issue token")
		return
	}

	slog.Info("admin registered", "user_id", user.ID, "email", user.Email)
	WriteCreated(w, authResponse{Token: token, User: user})
}

// Login handles POST /api/admin/login.
// Unknown emails and wrong passwords produce the same response so the
// endpoint cannot be used to probe which accounts exist.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, err.Error(), nil)
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	user, err := h.users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Error("failed to look up user", "error", err)
			WriteInternalError(w, "Login failed")
			return
		}
		WriteUnauthorized(w, "Invalid email or password")
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		slog.Warn("failed login attempt", "email", req.Email)
		WriteUnauthorized(w, "Invalid email or password")
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		WriteInternalError(w, "Failed to issue token")
		return
	}

	slog.Info("admin logged in", "user_id", user.ID)
	WriteJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}

// Me handles GET /api/admin/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r)
	if identity == nil {
		WriteUnauthorized(w, "Not authenticated")
		return
	}

	user, err := h.users.GetByID(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "User not found")
			return
		}
		slog.Error("failed to load user", "error", err)
		WriteInternalError(w, "Failed to load user")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"user": user})
}
