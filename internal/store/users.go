// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/halcyonsec/siteapi/internal/model"
)

// UserStore persists admin account records.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a user store over the shared database handle.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = "id, email, password_hash, name, created_at, updated_at"

func scanUser(row *sql.Row) (model.AdminUser, error) {
	var u model.AdminUser
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt)
	return u, translateErr(err)
}

// Create persists a new admin user. Returns ErrConflict when the email is
// already registered (enforced by the UNIQUE index, not a pre-check).
func (s *UserStore) Create(ctx context.Context, email, passwordHash, name string) (model.AdminUser, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO admin_users (email, password_hash, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		email, passwordHash, name, now, now,
	)
	if err != nil {
		return model.AdminUser{}, translateErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.AdminUser{}, err
	}

	return model.AdminUser{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// GetByEmail fetches an admin user by email. Returns ErrNotFound when the
// email is unknown; callers composing the login flow must not leak this
// distinction to clients.
func (s *UserStore) GetByEmail(ctx context.Context, email string) (model.AdminUser, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM admin_users WHERE email = ?`, email)
	return scanUser(row)
}

// GetByID fetches an admin user by id.
func (s *UserStore) GetByID(ctx context.Context, id int64) (model.AdminUser, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM admin_users WHERE id = ?`, id)
	return scanUser(row)
}

// EmailExists reports whether an email is already registered.
func (s *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM admin_users WHERE email = ?`, email).Scan(&count)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	return count > 0, nil
}
