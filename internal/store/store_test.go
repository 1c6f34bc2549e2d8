// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
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
