// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/halcyonsec/siteapi/internal/media"
)

// maxUploadSize caps media uploads at 32 MB.
const maxUploadSize = 32 << 20

// MediaHandler handles admin media uploads to object storage.
type MediaHandler struct {
	uploader *media.Uploader
}

// NewMediaHandler creates a new media handler.
func NewMediaHandler(uploader *media.Uploader) *MediaHandler {
	return &MediaHandler{uploader: uploader}
}

type uploadResponse struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// Upload handles POST /api/admin/media. Expects a multipart form with a
// "file" part and an optional "folder" field.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		WriteBadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "Missing file part", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.Error("failed to read upload", "error", err)
		WriteInternalError(w, "Failed to read upload")
		return
	}

	folder := r.FormValue("folder")
	if folder == "" {
		folder = "uploads"
	}

	url, key, err := h.uploader.UploadBuffer(r.Context(), data, folder, media.UploadOptions{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		if errors.Is(err, media.ErrNotConfigured) {
			WriteInternalError(w, "Media storage is not configured")
			return
		}
		slog.Error("failed to upload media", "error", err)
		WriteInternalError(w, "Failed to upload file")
		return
	}

	slog.Info("media uploaded", "key", key, "size", len(data))
	WriteCreated(w, uploadResponse{URL: url, Key: key})
}
