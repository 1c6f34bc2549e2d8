// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/mattn/go-sqlite3"

	"github.com/halcyonsec/siteapi/internal/auth"
	"github.com/halcyonsec/siteapi/internal/cache"
)

// testDB creates an in-memory SQLite database with the application schema.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	schema := `
		CREATE TABLE admin_users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			name TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE careers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			location TEXT NOT NULL,
			type TEXT NOT NULL,
			description TEXT NOT NULL,
			requirements TEXT NOT NULL DEFAULT '[]',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE news (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			slug TEXT NOT NULL UNIQUE,
			category TEXT NOT NULL DEFAULT '',
			excerpt TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			featured_image TEXT NOT NULL DEFAULT '',
			post_type TEXT NOT NULL DEFAULT 'standard',
			video_url TEXT NOT NULL DEFAULT '',
			audio_url TEXT NOT NULL DEFAULT '',
			gallery_images TEXT NOT NULL DEFAULT '[]',
			slider_images TEXT NOT NULL DEFAULT '[]',
			quote_text TEXT NOT NULL DEFAULT '',
			quote_author TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			publish_date DATETIME NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			is_featured BOOLEAN NOT NULL DEFAULT 0,
			is_popular_feed BOOLEAN NOT NULL DEFAULT 0,
			status TEXT NOT NULL DEFAULT 'draft',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE form_submissions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			form_source TEXT NOT NULL,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			message TEXT NOT NULL DEFAULT '',
			position TEXT NOT NULL DEFAULT '',
			experience TEXT NOT NULL DEFAULT '',
			cv_url TEXT NOT NULL DEFAULT '',
			cv_file_name TEXT NOT NULL DEFAULT '',
			agreed_to_terms BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);
	`

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// testTokens creates a token service with a fixed test secret.
func testTokens(t *testing.T) *auth.TokenService {
	t.Helper()
	return auth.NewTokenService([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
}

// testTaxonomy creates a taxonomy cache over an in-memory backend.
func testTaxonomy(t *testing.T) *cache.Taxonomy {
	t.Helper()
	backend := cache.NewMemoryCache(time.Minute)
	t.Cleanup(func() { _ = backend.Close() })
	return cache.NewTaxonomy(backend, time.Minute)
}

// jsonRequest builds a request with a JSON-encoded body.
func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	return r
}

// requestWithURLParams adds chi URL parameters to a request.
func requestWithURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeBody decodes a JSON response body into T.
func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return v
}

// page is the decoded pagination envelope for tests.
type page[T any] struct {
	Items       []T   `json:"items"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
}
