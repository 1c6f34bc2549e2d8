// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// Form sources identify the UI surface a submission originated from.
const (
	FormSourceHeroConsultation  = "hero-consultation"
	FormSourceContactPage       = "contact-page"
	FormSourceCareerApplication = "career-application"
)

// ValidFormSources returns all accepted form source values.
func ValidFormSources() []string {
	return []string{
		FormSourceHeroConsultation,
		FormSourceContactPage,
		FormSourceCareerApplication,
	}
}

// IsValidFormSource checks if a form source is valid.
func IsValidFormSource(source string) bool {
	for _, s := range ValidFormSources() {
		if s == source {
			return true
		}
	}
	return false
}

// FormSubmission is a visitor-submitted form record. Immutable after
// creation except for deletion by an admin.
type FormSubmission struct {
	ID            int64     `json:"id"`
	FormSource    string    `json:"formSource"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	Message       string    `json:"message,omitempty"`
	Position      string    `json:"position,omitempty"`
	Experience    string    `json:"experience,omitempty"`
	CVURL         string    `json:"cvUrl,omitempty"`
	CVFileName    string    `json:"cvFileName,omitempty"`
	AgreedToTerms bool      `json:"agreedToTerms"`
	CreatedAt     time.Time `json:"createdAt"`
}

// SourceCount is one row of the grouped submission statistics.
type SourceCount struct {
	Source string `json:"source"`
	Count  int64  `json:"count"`
}

// SubmissionStats aggregates submissions across all sources.
type SubmissionStats struct {
	Total    int64         `json:"total"`
	BySource []SourceCount `json:"bySource"`
}
