// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/halcyonsec/siteapi/internal/store"
)

// CareersHandler handles job listing endpoints. Careers have no draft
// state, so the public listing and the admin listing are the same query.
type CareersHandler struct {
	careers *store.CareerStore
}

// NewCareersHandler creates a new careers handler.
func NewCareersHandler(careers *store.CareerStore) *CareersHandler {
	return &CareersHandler{careers: careers}
}

type createCareerRequest struct {
	Title        string   `json:"title"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
}

type updateCareerRequest struct {
	Title        *string   `json:"title"`
	Location     *string   `json:"location"`
	Type         *string   `json:"type"`
	Description  *string   `json:"description"`
	Requirements *[]string `json:"requirements"`
}

// List handles GET /api/careers and GET /api/admin/careers.
func (h *CareersHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit, offset := Pagination(r)

	careers, total, err := h.careers.List(r.Context(), limit, offset)
	if err != nil {
		slog.Error("failed to list careers", "error", err)
		WriteInternalError(w, "Failed to list careers")
		return
	}

	WritePaginated(w, careers, total, page, limit)
}

// Get handles GET /api/admin/careers/{id}.
func (h *CareersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid career ID", nil)
		return
	}

	career, err := h.careers.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Career not found")
			return
		}
		slog.Error("failed to get career", "error", err, "career_id", id)
		WriteInternalError(w, "Failed to retrieve career")
		return
	}

	WriteJSON(w, http.StatusOK, career)
}

// Create handles POST /api/admin/careers.
func (h *CareersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createCareerRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, err.Error(), nil)
		return
	}

	details := map[string]string{}
	for field, value := range map[string]string{
		"title":       req.Title,
		"location":    req.Location,
		"type":        req.Type,
		"description": req.Description,
	} {
		if strings.TrimSpace(value) == "" {
			details[field] = "This field is required"
		}
	}
	if req.Requirements == nil {
		details["requirements"] = "Requirements must be a list (may be empty)"
	}
	if len(details) > 0 {
		WriteBadRequest(w, "Validation failed", details)
		return
	}

	career, err := h.careers.Create(r.Context(), store.CreateCareerParams{
		Title:        req.Title,
		Location:     req.Location,
		Type:         req.Type,
		Description:  req.Description,
		Requirements: req.Requirements,
	})
	if err != nil {
		slog.Error("failed to create career", "error", err)
		WriteInternalError(w, "Failed to create career")
		return
	}

	slog.Info("career created", "career_id", career.ID, "title", career.Title)
	WriteCreated(w, career)
}

// Update handles PUT /api/admin/careers/{id}. Only supplied fields change.
func (h *CareersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid career ID", nil)
		return
	}

	var req updateCareerRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, err.Error(), nil)
		return
	}

	career, err := h.careers.Update(r.Context(), id, store.UpdateCareerParams{
		Title:        req.Title,
		Location:     req.Location,
		Type:         req.Type,
		Description:  req.Description,
		Requirements: req.Requirements,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			WriteNotFound(w, "Career not found")
			return
		}
		slog.Error("failed to update career", "error", err, "career_id", id)
		WriteInternalError(w, "Failed to update career")
		return
	}

	slog.Info("career updated", "career_id", id)
	WriteJSON(w, http.StatusOK, career)
}

// Delete handles DELETE /api/admin/careers/{id}.
func (h *CareersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid career ID", nil)
		return
	}

	removed, err := h.careers.Delete(r.Context(), id)
	if err != nil {
		slog.Error("failed to delete career", "error", err, "career_id", id)
		WriteInternalError(w, "Failed to delete career")
		return
	}
	if !removed {
		WriteNotFound(w, "Career not found")
		return
	}

	slog.Info("career deleted", "career_id", id)
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Career deleted"})
}
