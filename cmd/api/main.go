// Copyright (c) 2026 Loft. All rights reserved.
// Author: van.tran.dev@gmail.com

// Command api is the entry point for the Loft HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire the token verifier against the user repository.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/vantran-dev/loft/internal/api"
	"github.com/vantran-dev/loft/internal/content/comment"
	"github.com/vantran-dev/loft/internal/content/post"
	"github.com/vantran-dev/loft/internal/platform/config"
	"github.com/vantran-dev/loft/internal/platform/constants"
	"github.com/vantran-dev/loft/internal/platform/migration"
	pgstore "github.com/vantran-dev/loft/internal/platform/postgres"
	"github.com/vantran-dev/loft/internal/platform/ratelimit"
	redisstore "github.com/vantran-dev/loft/internal/platform/redis"
	"github.com/vantran-dev/loft/internal/platform/sec"
	"github.com/vantran-dev/loft/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
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

	// ── 6. Identity Core ──────────────────────────────────────────────────
	// The user repository doubles as the secret resolver: every token
	// verification re-reads the account row's current signing secret.
	userRepository := auth.NewUserRepository(pool)
	tokenService := sec.NewTokenService(userRepository, constants.AuthIssuer, constants.TokenFreshnessCeiling)

	var captchaVerifier auth.CaptchaVerifier
	if cfg.HCaptchaSecret != "" {
		captchaVerifier = auth.NewHCaptchaVerifier(cfg.HCaptchaSecret)
	} else {
		log.Warn("captcha_disabled_allow_all_mode")
		captchaVerifier = auth.AllowAllVerifier{}
	}

	// ── 7. Rate Limiters ──────────────────────────────────────────────────
	// Global limiter: in-process token buckets. Write limiter: Redis-backed
	// fixed window so the comment budget holds across instances.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	globalLimiter := ratelimit.NewMemoryStore(appCtx,
		constants.DefaultRateLimitRPS,
		constants.DefaultRateLimitBurst,
		constants.RateLimitClientTTL,
		constants.RateLimitCleanupInterval,
	)
	writeLimiter := ratelimit.NewRedisStore(rdb,
		constants.WriteRateLimitWindow,
		constants.WriteRateLimitMax,
		log,
	)

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(userRepository, tokenService, captchaVerifier)
	authHandler := auth.NewHandler(authService)

	postRepository := post.NewPostRepository(pool)
	postService := post.NewService(postRepository)
	postHandler := post.NewHandler(postService, writeLimiter)

	commentRepository := comment.NewCommentRepository(pool)
	commentService := comment.NewService(commentRepository, postService)
	commentHandler := comment.NewHandler(commentService, writeLimiter)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Post:      postHandler,
		Comment:   commentHandler,
	}

	server := api.NewServer(cfg, log, tokenService, globalLimiter, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
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
		log.Error("startup_failed",
			slog.String("step", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
