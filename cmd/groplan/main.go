// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// groplan is the bilingual grow-tent catalog backend: an admin JSON API,
// a public storefront read side, and the supporting services.
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

	"github.com/joho/godotenv"

	"github.com/olegiv/groplan-go/internal/cache"
	"github.com/olegiv/groplan-go/internal/config"
	"github.com/olegiv/groplan-go/internal/geoip"
	"github.com/olegiv/groplan-go/internal/handler/api"
	"github.com/olegiv/groplan-go/internal/i18n"
	"github.com/olegiv/groplan-go/internal/logging"
	"github.com/olegiv/groplan-go/internal/middleware"
	"github.com/olegiv/groplan-go/internal/scheduler"
	"github.com/olegiv/groplan-go/internal/seed"
	"github.com/olegiv/groplan-go/internal/service"
	"github.com/olegiv/groplan-go/internal/session"
	"github.com/olegiv/groplan-go/internal/store"
	"github.com/olegiv/groplan-go/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "groplan - grow tent catalog backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GROPLAN_SESSION_SECRET   Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GROPLAN_DB_DRIVER        sqlite or mysql (default: sqlite)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GROPLAN_DB_PATH          SQLite database path (default: ./data/groplan.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GROPLAN_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GROPLAN_ENV              development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GROPLAN_REDIS_URL        Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  GROPLAN_OPENAI_API_KEY   Enables the translation assist endpoint (optional)\n")
	}
	flag.Parse()

	if *showVersion {
		info := version.Get()
		_, _ = fmt.Printf("groplan %s (commit: %s, built: %s)\n", info.Version, info.GitCommit, info.BuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

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

	if err := i18n.Init(logger); err != nil {
		return fmt.Errorf("initializing i18n: %w", err)
	}

	if cfg.DBDriver == store.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	dsn := cfg.DBPath
	if cfg.DBDriver == store.DriverMySQL {
		dsn = cfg.DBDSN
	}
	slog.Info("initializing database", "driver", cfg.DBDriver)
	db, err := store.NewDB(cfg.DBDriver, dsn)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db, cfg.DBDriver); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Route WARN and ERROR logs into the event log as well.
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	if cfg.DoSeed {
		if err := seed.Run(context.Background(), db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
		slog.Info("demo data seeded")
	}

	appCache, err := cache.New(cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	}, logger)
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	defer func() {
		if err := appCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	var geo *geoip.Resolver
	if cfg.GeoIPEnabled() {
		geo, err = geoip.NewResolver(cfg.GeoIPDBPath)
		if err != nil {
			slog.Warn("geoip disabled", "error", err)
			geo = nil
		} else {
			defer func() { _ = geo.Close() }()
		}
	}

	sm := session.New(db, cfg.DBDriver, cfg.IsDevelopment())

	events := service.NewEventService(db, geo)
	media := service.NewMediaService(cfg.UploadsDir, "/uploads")
	var translate *service.TranslateService
	if cfg.TranslateEnabled() {
		translate = service.NewTranslateService(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		slog.Info("translation assist enabled", "model", cfg.OpenAIModel)
	}
	loginGuard := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())

	h := api.NewHandler(db, api.Options{
		SessionManager: sm,
		Events:         events,
		Media:          media,
		Translate:      translate,
		LoginGuard:     loginGuard,
		Cache:          appCache,
		SiteURL:        cfg.SiteURL,
	})

	sched := scheduler.New(db, geo, h.WarmPublicCache, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	if err := h.WarmPublicCache(context.Background()); err != nil {
		slog.Warn("initial cache warmup failed", "error", err)
	}

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           h.Router(cfg),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
