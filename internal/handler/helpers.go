// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
)

const (
	// DefaultPage is used when the page query parameter is absent or invalid.
	DefaultPage = 1
	// DefaultLimit is used when the limit query parameter is absent or invalid.
	DefaultLimit = 9
	// MaxLimit caps the page size a client can request.
	MaxLimit = 100
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ParsePageParam returns the page query parameter, defaulting to DefaultPage
// when absent, non-numeric, or less than 1.
func ParsePageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return DefaultPage
	}
	return page
}

// ParseLimitParam returns the limit query parameter, defaulting to
// DefaultLimit when absent, non-numeric, or out of range.
func ParseLimitParam(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 || limit > MaxLimit {
		return DefaultLimit
	}
	return limit
}

// Pagination returns page, limit and the derived offset for a list request.
func Pagination(r *http.Request) (page, limit, offset int) {
	page = ParsePageParam(r)
	limit = ParseLimitParam(r)
	offset = (page - 1) * limit
	return page, limit, offset
}

// ParseIDParam parses the {id} URL parameter as an int64.
func ParseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// decodeJSON decodes the request body into v.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

// isValidEmail reports whether s looks like an email address.
func isValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}
