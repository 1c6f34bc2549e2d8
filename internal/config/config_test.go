// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SITE_JWT_SECRET", testSecret)
	t.Setenv("SITE_ADMIN_SECRET", "registration-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./data/site.db", cfg.DBPath)
	assert.Equal(t, "localhost:8080", cfg.ServerAddr())
	assert.Equal(t, 24, cfg.JWTTTLHours)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.UseRedisCache())
	assert.False(t, cfg.SeedAdminEnabled())
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("SITE_JWT_SECRET", "")
	t.Setenv("SITE_ADMIN_SECRET", "registration-secret")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_ShortJWTSecret(t *testing.T) {
	t.Setenv("SITE_JWT_SECRET", "too-short")
	t.Setenv("SITE_ADMIN_SECRET", "registration-secret")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SITE_JWT_SECRET")
}

func TestLoad_InvalidTTL(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SITE_JWT_TTL_HOURS", "0")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_SeedAdmin(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SITE_SEED_ADMIN_EMAIL", "admin@halcyonsec.example")
	t.Setenv("SITE_SEED_ADMIN_PASSWORD", "changeme")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.SeedAdminEnabled())
	assert.Equal(t, "Administrator", cfg.SeedAdminName)
}
