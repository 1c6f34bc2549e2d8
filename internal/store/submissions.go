// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/halcyonsec/siteapi/internal/model"
)

// SubmissionStore persists visitor form submissions. Records are immutable
// after creation except for deletion by an admin.
type SubmissionStore struct {
	db *sql.DB
}

// NewSubmissionStore creates a submission store over the shared database handle.
func NewSubmissionStore(db *sql.DB) *SubmissionStore {
	return &SubmissionStore{db: db}
}

// CreateSubmissionParams holds the fields of an inbound form submission.
type CreateSubmissionParams struct {
	FormSource    string
	Name          string
	Email         string
	Phone         string
	Message       string
	Position      string
	Experience    string
	CVURL         string
	CVFileName    string
	AgreedToTerms bool
}

const submissionColumns = `id, form_source, name, email, phone, message, position, experience,
	cv_url, cv_file_name, agreed_to_terms, created_at`

func scanSubmission(scan func(dest ...any) error) (model.FormSubmission, error) {
	var f model.FormSubmission
	err := scan(
		&f.ID, &f.FormSource, &f.Name, &f.Email, &f.Phone, &f.Message, &f.Position, &f.Experience,
		&f.CVURL, &f.CVFileName, &f.AgreedToTerms, &f.CreatedAt,
	)
	if err != nil {
		return model.FormSubmission{}, translateErr(err)
	}
	return f, nil
}

// Create persists a new submission, stamping created_at.
func (s *SubmissionStore) Create(ctx context.Context, params CreateSubmissionParams) (model.FormSubmission, error) {
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO form_submissions (form_source, name, email, phone, message, position, experience,
			cv_url, cv_file_name, agreed_to_terms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		params.FormSource, params.Name, params.Email, params.Phone, params.Message, params.Position,
		params.Experience, params.CVURL, params.CVFileName, params.AgreedToTerms, now,
	)
	if err != nil {
		return model.FormSubmission{}, translateErr(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return model.FormSubmission{}, err
	}

	return model.FormSubmission{
		ID:            id,
		FormSource:    params.FormSource,
		Name:          params.Name,
		Email:         params.Email,
		Phone:         params.Phone,
		Message:       params.Message,
		Position:      params.Position,
		Experience:    params.Experience,
		CVURL:         params.CVURL,
		CVFileName:    params.CVFileName,
		AgreedToTerms: params.AgreedToTerms,
		CreatedAt:     now,
	}, nil
}

// GetByID fetches a submission by id.
func (s *SubmissionStore) GetByID(ctx context.Context, id int64) (model.FormSubmission, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+submissionColumns+` FROM form_submissions WHERE id = ?`, id)
	return scanSubmission(row.Scan)
}

// List returns submissions newest-first with the total count for the same
// filter. An empty source lists every submission.
func (s *SubmissionStore) List(ctx context.Context, source string, limit, offset int) ([]model.FormSubmission, int64, error) {
	where := ""
	args := []any{}
	if source != "" {
		where = ` WHERE form_source = ?`
		args = append(args, source)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+submissionColumns+` FROM form_submissions`+where+
			` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	submissions := make([]model.FormSubmission, 0)
	for rows.Next() {
		f, err := scanSubmission(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		submissions = append(submissions, f)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM form_submissions`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return submissions, total, nil
}

// Delete removes a submission. Returns false when the id was not found.
func (s *SubmissionStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM form_submissions WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Stats returns the total submission count and per-source counts sorted by
// count descending.
func (s *SubmissionStore) Stats(ctx context.Context) (model.SubmissionStats, error) {
	var stats model.SubmissionStats

	rows, err := s.db.QueryContext(ctx,
		`SELECT form_source, COUNT(*) AS cnt FROM form_submissions
		 GROUP BY form_source ORDER BY cnt DESC, form_source`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	stats.BySource = make([]model.SourceCount, 0)
	for rows.Next() {
		var sc model.SourceCount
		if err := rows.Scan(&sc.Source, &sc.Count); err != nil {
			return stats, err
		}
		stats.BySource = append(stats.BySource, sc)
		stats.Total += sc.Count
	}

	return stats, rows.Err()
}
