package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sarnathbank/banking_app/internal/core/services"
	"github.com/sarnathbank/banking_app/internal/handlers"
	"github.com/sarnathbank/banking_app/internal/middleware"
	"github.com/sarnathbank/banking_app/internal/platform/config"
	"github.com/sarnathbank/banking_app/internal/repositories/memstore"
	"github.com/sarnathbank/banking_app/internal/repositories/snapshot"
)

// @title Sarnath Banking API
// @version 1.0
// @description Account ledger backend: accounts, authentication, deposits, withdrawals and transfers.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// Build the account table from the snapshot; an absent snapshot means
	// an empty table.
	snapshots := snapshot.NewFileStore(cfg.SnapshotPath)
	store, err := memstore.NewAccountStore(ctx, snapshots)
	if err != nil {
		logger.Error("Failed to load account table", slog.String("error", err.Error()), slog.String("path", cfg.SnapshotPath))
		os.Exit(1)
	}
	logger.Info("Account table loaded", slog.String("path", cfg.SnapshotPath))

	svc := services.NewServiceContainer(store, cfg)

	// Bootstrap the administrator record if the snapshot lacks one.
	if err := svc.Auth.EnsureAdministrator(ctx); err != nil {
		logger.Error("Failed to bootstrap administrator", slog.String("error", err.Error()))
		os.Exit(1)
	}

	loginLimiter, err := middleware.NewLoginRateLimiter(cfg.LoginRateLimit)
	if err != nil {
		logger.Error("Failed to build login rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery(), cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, svc, loginLimiter)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
