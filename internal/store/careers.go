// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/halcyonsec/siteapi/internal/model"
)

// CareerStore persists job listings. Careers have no draft state: every
// record is publicly readable once created.
type CareerStore struct {
	db *sql.DB
}

// NewCareerStore creates a career store over the shared database handle.
func NewCareerStore(db *sql.DB) *CareerStore {
	return &CareerStore{db: db}
}

// CreateCareerParams holds the fields required to create a career.
type CreateCareerParams struct {
	Title        string
	Location     string
	Type         string
	Description  string
	Requirements []string
}

// UpdateCareerParams holds the optional fields for a partial update.
// Only non-nil fields are overwritten.
type UpdateCareerParams struct {
	Title        *string
	Location     *string
	Type         *string
	Description  *string
	Requirements *[]string
}

const careerColumns = "id, title, location, type, description, requirements, created_at, updated_at"

func scanCareer(scan func(dest ...any) error) (model.Career, error) {
	var c model.Career
	var requirements string
	if err := scan(&c.ID, &c.Title, &c.Location, &c.Type, &c.Description, &requirements, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return model.Career{}, translateErr(err)
	}
	if err := json.Unmarshal([]byte(requirements), &c.Requirements); err != nil {
		return model.Career{}, fmt.Errorf("decoding requirements: %w", err)
	}
	return c, nil
}

// Create persists a new career listing, stamping both timestamps.
// Requirement order is preserved.
func (s *CareerStore) Create(ctx context.Context, params CreateCareerParams) (model.Career, error) {
	requirements, err := encodeStringList(params.Requirements)
	if err != nil {
		return model.Career{}, err
	}

	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO careers (title, location, type, description, requirements, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		params.Title, params.Location, params.Type, params.Description, requirements, now, now,
	)
	if err != nil {
		return model.Career{}, translateErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.Career{}, err
	}

	return s.GetByID(ctx, id)
}

// GetByID fetches a career by id.
func (s *CareerStore) GetByID(ctx context.Context, id int64) (model.Career, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+careerColumns+` FROM careers WHERE id = ?`, id)
	return scanCareer(row.Scan)
}

// List returns careers newest-first with the total count. Ordering by
// created_at with id as tie-breaker keeps pagination deterministic.
func (s *CareerStore) List(ctx context.Context, limit, offset int) ([]model.Career, int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+careerColumns+` FROM careers
		 ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	careers := make([]model.Career, 0)
	for rows.Next() {
		c, err := scanCareer(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		careers = append(careers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM careers`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return careers, total, nil
}

// Update overwrites only the supplied fields and stamps updated_at.
// Returns ErrNotFound when the id does not exist.
func (s *CareerStore) Update(ctx context.Context, id int64, params UpdateCareerParams) (model.Career, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return model.Career{}, err
	}

	if params.Title != nil {
		existing.Title = *params.Title
	}
	if params.Location != nil {
		existing.Location = *params.Location
	}
	if params.Type != nil {
		existing.Type = *params.Type
	}
	if params.Description != nil {
		existing.Description = *params.Description
	}
	if params.Requirements != nil {
		existing.Requirements = *params.Requirements
	}

	requirements, err := encodeStringList(existing.Requirements)
	if err != nil {
		return model.Career{}, err
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx,
		`UPDATE careers SET title = ?, location = ?, type = ?, description = ?, requirements = ?, updated_at = ?
		 WHERE id = ?`,
		existing.Title, existing.Location, existing.Type, existing.Description, requirements, now, id,
	)
	if err != nil {
		return model.Career{}, translateErr(err)
	}

	existing.UpdatedAt = now
	return existing, nil
}

// Delete removes a career. Returns false when the id was not found.
func (s *CareerStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM careers WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// encodeStringList marshals a string slice to its JSON column form,
// normalizing nil to an empty array.
func encodeStringList(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("encoding string list: %w", err)
	}
	return string(encoded), nil
}
