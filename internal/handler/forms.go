// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/halcyonsec/siteapi/internal/model"
	"github.com/halcyonsec/siteapi/internal/store"
)

// FormsHandler handles public form intake and admin submission review.
type FormsHandler struct {
	subs *store.SubmissionStore
}

// NewFormsHandler creates a new forms handler.
func NewFormsHandler(subs *store.SubmissionStore) *FormsHandler {
	return &FormsHandler{subs: subs}
}

type submitFormRequest struct {
	FormSource    string `json:"formSource"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Message       string `json:"message"`
	Position      string `json:"position"`
	Experience    string `json:"experience"`
	CVURL         string `json:"cvUrl"`
	CVFileName    string `json:"cvFileName"`
	AgreedToTerms bool   `json:"agreedToTerms"`
}

// Submit handles POST /api/forms/submit.
func (h *FormsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitFormRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, err.Error(), nil)
		return
	}

	details := map[string]string{}
	if !model.IsValidFormSource(req.FormSource) {
		details["formSource"] = "Unknown form source"
	}
	if strings.TrimSpace(req.Name) == "" {
		details["name"] = "Name is required"
	}
	if !isValidEmail(req.Email) {
		details["email"] = "A valid email address is required"
	}
	if len(details) > 0 {
		WriteBadRequest(w, "Validation failed", details)
		return
	}

	submission, err := h.subs.Create(r.Context(), store.CreateSubmissionParams{
		FormSource:    req.FormSource,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Message:       req.Message,
		Position:      req.Position,
		Experience:    req.Experience,
		CVURL:         req.CVURL,
		CVFileName:    req.CVFileName,
		AgreedToTerms: req.AgreedToTerms,
	})
	if err != nil {
		slog.Error("failed to store form submission", "error", err)
		WriteInternalError(w, "Failed to submit form")
		return
	}

	slog.Info("form submitted", "submission_id", submission.ID, "source", submission.FormSource)
	WriteCreated(w, submission)
}

// AdminList handles GET /api/admin/forms. With type=stats it returns the
// aggregate counts instead of the submission list.
func (h *FormsHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	switch q.Get("type") {
	case "":
	case "stats":
		stats, err := h.subs.Stats(r.Context())
		if err != nil {
			slog.Error("failed to compute submission stats", "error", err)
			WriteInternalError(w, "Failed to compute stats")
			return
		}
		WriteJSON(w, http.StatusOK, stats)
		return
	default:
		WriteBadRequest(w, "Unknown type; expected stats", nil)
		return
	}

	source := q.Get("source")
	if source != "" && !model.IsValidFormSource(source) {
		WriteBadRequest(w, "Unknown form source", nil)
		return
	}

	page, limit, offset := Pagination(r)
	submissions, total, err := h.subs.List(r.Context(), source, limit, offset)
	if err != nil {
		slog.Error("failed to list submissions", "error", err)
		WriteInternalError(w, "Failed to list submissions")
		return
	}

	WritePaginated(w, submissions, total, page, limit)
}

// Delete handles DELETE /api/admin/forms/{id}.
func (h *FormsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid submission ID", nil)
		return
	}

	removed, err := h.subs.Delete(r.Context(), id)
	if err != nil {
		slog.Error("failed to delete submission", "error", err, "submission_id", id)
		WriteInternalError(w, "Failed to delete submission")
		return
	}
	if !removed {
		WriteNotFound(w, "Submission not found")
		return
	}

	slog.Info("submission deleted", "submission_id", id)
	WriteJSON(w, http.StatusOK, map[string]string{"message": "Submission deleted"})
}
