// Copyright (c) 2026 Sultans Admin. All rights reserved.
// Author: omar46.dev@gmail.com

// Command api is the entry point for the Sultans' Revenge admin server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire the user directory, session cookies, and domain services.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/omar46/sultans-admin/internal/activation"
	"github.com/omar46/sultans-admin/internal/admins"
	"github.com/omar46/sultans-admin/internal/api"
	"github.com/omar46/sultans-admin/internal/auth"
	"github.com/omar46/sultans-admin/internal/castle"
	"github.com/omar46/sultans-admin/internal/directory"
	"github.com/omar46/sultans-admin/internal/gate"
	"github.com/omar46/sultans-admin/internal/license"
	"github.com/omar46/sultans-admin/internal/members"
	"github.com/omar46/sultans-admin/internal/ownership"
	"github.com/omar46/sultans-admin/internal/platform/config"
	"github.com/omar46/sultans-admin/internal/platform/constants"
	"github.com/omar46/sultans-admin/internal/platform/migration"
	pgstore "github.com/omar46/sultans-admin/internal/platform/postgres"
	redisstore "github.com/omar46/sultans-admin/internal/platform/redis"
	"github.com/omar46/sultans-admin/internal/platform/sec"
	"github.com/omar46/sultans-admin/internal/war"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "sultans-admin"))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "sultans-admin"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Sessions & Directory ───────────────────────────────────────────
	tokens, err := sec.NewTokenService(cfg.SessionSecret, constants.AuthIssuer)
	must(log, err, "initialize session token service")

	cookies := auth.NewCookieManager(tokens, cfg.IsProduction(), time.Now)

	// The directory is the external identity provider. Development runs
	// without one fall back to the in-memory directory; password checks
	// against it still work, so the login flow is fully exercisable.
	var dir directory.Directory
	var verifier directory.PasswordVerifier
	if cfg.DirectoryBaseURL == "" && cfg.IsDevelopment() {
		log.Warn("no directory configured, using in-memory directory")
		mem := directory.NewMemory()
		dir, verifier = mem, mem
	} else {
		client := directory.NewClient(cfg.DirectoryBaseURL, cfg.DirectoryAPIKey, &http.Client{
			Timeout: constants.DirectoryRequestTimeout,
		}, log)
		dir, verifier = client, client
	}

	propagator := ownership.New(dir, log)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	licenseRepository := license.NewPostgresRepository(pool)
	evaluator := activation.NewEvaluator(licenseRepository, time.Now)
	activationService := activation.NewService(licenseRepository, evaluator, propagator, log, time.Now)
	activationHandler := activation.NewHandler(activationService, cookies)

	authService := auth.NewService(dir, verifier, auth.NewRedisThrottle(rdb), log)
	realms := auth.NewRealmService(
		cfg.SuperAdminUser, cfg.SuperAdminPassHash,
		cfg.CodesAdminUser, cfg.CodesAdminPassHash,
	)
	authHandler := auth.NewHandler(authService, realms, cookies)

	membersService := members.NewService(dir, propagator, log)
	membersHandler := members.NewHandler(membersService)

	adminsService := admins.NewService(dir, propagator, log)
	adminsHandler := admins.NewHandler(adminsService)

	castleService := castle.NewService(castle.NewPostgresRepository(pool), log)
	castleHandler := castle.NewHandler(castleService)

	warService := war.NewService(war.NewPostgresRepository(pool), castleService, log)
	warHandler := war.NewHandler(warService)

	accessGate := gate.New(cookies, evaluator, time.Now)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Auth:       authHandler,
		Activation: activationHandler,
		Members:    membersHandler,
		Admins:     adminsHandler,
		Castle:     castleHandler,
		War:        warHandler,
	}

	server := api.NewServer(context.Background(), cfg, log, accessGate, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
