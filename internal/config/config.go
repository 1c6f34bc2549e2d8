// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads and validates application configuration from
// environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// MinSecretLength is the minimum required length for signing secrets.
const MinSecretLength = 32

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"SITE_DB_PATH" envDefault:"./data/site.db"`
	ServerHost string `env:"SITE_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"SITE_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"SITE_ENV" envDefault:"development"`
	LogLevel   string `env:"SITE_LOG_LEVEL" envDefault:"info"`

	// Auth configuration. The token service fails closed: a missing or short
	// signing secret aborts startup rather than degrading per request.
	JWTSecret   string `env:"SITE_JWT_SECRET,required"`
	JWTTTLHours int    `env:"SITE_JWT_TTL_HOURS" envDefault:"24"`
	AdminSecret string `env:"SITE_ADMIN_SECRET,required"` // Shared secret gating admin registration

	// Optional initial admin account created on first boot
	SeedAdminEmail    string `env:"SITE_SEED_ADMIN_EMAIL"`
	SeedAdminPassword string `env:"SITE_SEED_ADMIN_PASSWORD"`
	SeedAdminName     string `env:"SITE_SEED_ADMIN_NAME" envDefault:"Administrator"`

	// Cache configuration
	RedisURL    string `env:"SITE_REDIS_URL"`                      // Optional Redis URL for the taxonomy cache
	CachePrefix string `env:"SITE_CACHE_PREFIX" envDefault:"site:"`
	CacheTTL    int    `env:"SITE_CACHE_TTL" envDefault:"300"` // Taxonomy cache TTL in seconds

	// Media upload configuration (S3-compatible object store)
	S3Region        string `env:"SITE_S3_REGION" envDefault:"us-east-1"`
	S3Bucket        string `env:"SITE_S3_BUCKET"`
	S3Endpoint      string `env:"SITE_S3_ENDPOINT"`
	S3AccessKey     string `env:"SITE_S3_ACCESS_KEY"`
	S3SecretKey     string `env:"SITE_S3_SECRET_KEY"`
	S3PublicBaseURL string `env:"SITE_S3_PUBLIC_BASE_URL"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// SeedAdminEnabled returns true if an initial admin account is configured.
func (c Config) SeedAdminEnabled() bool {
	return c.SeedAdminEmail != "" && c.SeedAdminPassword != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, fmt.Errorf("SITE_JWT_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSecretLength, len(cfg.JWTSecret))
	}

	if cfg.AdminSecret == "" {
		return nil, fmt.Errorf("SITE_ADMIN_SECRET must not be empty")
	}

	if cfg.JWTTTLHours <= 0 {
		return nil, fmt.Errorf("SITE_JWT_TTL_HOURS must be positive, got %d", cfg.JWTTTLHours)
	}

	return cfg, nil
}
