// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	h := NewHealthHandler(testDB(t))

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	status := decodeBody[HealthStatus](t, w)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "up", status.Checks["database"].Status)
	assert.NotEmpty(t, status.Uptime)
}

func TestHealth_DatabaseDown(t *testing.T) {
	db := testDB(t)
	require.NoError(t, db.Close())

	h := NewHealthHandler(db)

	w := httptest.NewRecorder()
	h.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	status := decodeBody[HealthStatus](t, w)
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "down", status.Checks["database"].Status)
}
