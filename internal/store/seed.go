// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/halcyonsec/siteapi/internal/auth"
)

// SeedAdmin creates the initial admin account on first boot if none exists
// with the configured email. A no-op when the account is already present.
func SeedAdmin(ctx context.Context, db *sql.DB, email, password, name string) error {
	users := NewUserStore(db)

	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		slog.Info("seed admin already exists, skipping", "email", email)
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("checking for seed admin: %w", err)
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing seed admin password: %w", err)
	}

	user, err := users.Create(ctx, email, passwordHash, name)
	if err != nil {
		return fmt.Errorf("creating seed admin: %w", err)
	}

	slog.Info("created seed admin user", "id", user.ID, "email", user.Email)
	return nil
}
