// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"database/sql"
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a record with the given id/slug does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a unique constraint
	// (user email, news slug). The existing record is left unmodified.
	ErrConflict = errors.New("duplicate key")
)

// translateErr maps driver errors onto the store's sentinel errors.
// The UNIQUE-violation check matches the message text because the message is
// stable across both SQLite drivers in use (modernc.org/sqlite in production,
// mattn/go-sqlite3 in tests).
func translateErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrConflict
	}
	return err
}
