// Copyright (c) 2025-2026 Halcyon Security
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/halcyonsec/siteapi/internal/auth"
	"github.com/halcyonsec/siteapi/internal/cache"
	"github.com/halcyonsec/siteapi/internal/config"
	"github.com/halcyonsec/siteapi/internal/handler"
	"github.com/halcyonsec/siteapi/internal/media"
	"github.com/halcyonsec/siteapi/internal/middleware"
	"github.com/halcyonsec/siteapi/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "siteapi - Halcyon Security website backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_JWT_SECRET        Token signing secret (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_ADMIN_SECRET      Shared secret gating admin registration (required)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_DB_PATH           SQLite database path (default: ./data/site.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_SERVER_PORT       Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_ENV               Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_REDIS_URL         Redis URL for the taxonomy cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  SITE_S3_BUCKET         S3 bucket for media uploads (optional)\n")
	}

	flag.Parse()

	if *showVersion {
		_, _ = fmt.Printf("siteapi %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	// Run migrations
	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Seed the initial admin account if configured
	ctx := context.Background()
	if cfg.SeedAdminEnabled() {
		if err := store.SeedAdmin(ctx, db, cfg.SeedAdminEmail, cfg.SeedAdminPassword, cfg.SeedAdminName); err != nil {
			return fmt.Errorf("seeding admin account: %w", err)
		}
	}

	// Initialize the taxonomy cache (Redis when configured, in-memory otherwise)
	cacheBackend, err := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := cacheBackend.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	if cfg.UseRedisCache() {
		slog.Info("cache initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("cache initialized", "backend", "memory")
	}
	taxonomy := cache.NewTaxonomy(cacheBackend, time.Duration(cfg.CacheTTL)*time.Second)

	// Stores
	users := store.NewUserStore(db)
	careers := store.NewCareerStore(db)
	news := store.NewNewsStore(db)
	subs := store.NewSubmissionStore(db)

	// Token service
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), time.Duration(cfg.JWTTTLHours)*time.Hour)

	// Media uploader (S3-compatible object store)
	uploader := media.NewUploader(media.Config{
		Region:        cfg.S3Region,
		Bucket:        cfg.S3Bucket,
		Endpoint:      cfg.S3Endpoint,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.S3PublicBaseURL,
	})
	if cfg.S3Bucket != "" {
		slog.Info("media uploads enabled", "bucket", cfg.S3Bucket, "region", cfg.S3Region)
	} else {
		slog.Warn("media uploads disabled: no S3 bucket configured")
	}

	// Handlers
	authHandler := handler.NewAuthHandler(users, tokens, cfg.AdminSecret)
	careersHandler := handler.NewCareersHandler(careers)
	newsHandler := handler.NewNewsHandler(news, taxonomy)
	formsHandler := handler.NewFormsHandler(subs)
	mediaHandler := handler.NewMediaHandler(uploader)
	healthHandler := handler.NewHealthHandler(db)

	// Rate limiter for unauthenticated write endpoints
	// 10 requests per second with burst of 20 per IP
	publicRateLimiter := middleware.NewGlobalRateLimiter(10.0, 20)
	slog.Info("public rate limiter initialized", "rate", "10 req/s", "burst", 20)

	// Create router
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5)) // Gzip compression with level 5
	r.Use(chimw.GetHead)     // Handle HEAD requests for uptime monitoring
	r.Use(chimw.Timeout(30 * time.Second))

	// Health check route
	r.Get("/health", healthHandler.Health)

	// Public routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/careers", careersHandler.List)
		r.Get("/news", newsHandler.PublicList)
		r.Get("/news/{slug}", newsHandler.GetBySlug)

		// Rate limited: unauthenticated writes
		r.Group(func(r chi.Router) {
			r.Use(publicRateLimiter.Middleware())
			r.Post("/forms/submit", formsHandler.Submit)
			r.Post("/admin/register", authHandler.Register)
			r.Post("/admin/login", authHandler.Login)
		})

		// Admin routes (bearer token required)
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens))

			r.Get("/me", authHandler.Me)

			r.Get("/careers", careersHandler.List)
			r.Post("/careers", careersHandler.Create)
			r.Get("/careers/{id}", careersHandler.Get)
			r.Put("/careers/{id}", careersHandler.Update)
			r.Delete("/careers/{id}", careersHandler.Delete)

			r.Get("/news", newsHandler.AdminList)
			r.Post("/news", newsHandler.Create)
			r.Get("/news/{id}", newsHandler.Get)
			r.Put("/news/{id}", newsHandler.Update)
			r.Delete("/news/{id}", newsHandler.Delete)

			r.Get("/forms", formsHandler.AdminList)
			r.Delete("/forms/{id}", formsHandler.Delete)

			r.Post("/media", mediaHandler.Upload)
		})
	})

	// Create server with appropriate timeouts
	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for CV uploads on slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
