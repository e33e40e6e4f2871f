// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package server wires configuration, storage, services and routes into a
// running HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/planora/planora/internal/config"
	"github.com/planora/planora/internal/database"
	"github.com/planora/planora/internal/handlers"
	"github.com/planora/planora/internal/middleware"
	"github.com/planora/planora/internal/repository"
	"github.com/planora/planora/internal/services/account"
	"github.com/planora/planora/internal/services/email"
	"github.com/planora/planora/internal/services/event"
	"github.com/planora/planora/internal/token"
	"github.com/urfave/cli/v3"
)

// sweepInterval is how often expired revocation list entries are pruned.
// Entries live exactly one session TTL, so this cadence keeps the list
// within one interval of its minimal size.
const sweepInterval = 10 * time.Minute

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// Database
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	// Repository and services
	repo := repository.New(db)
	tokens := token.NewService([]byte(cfg.Auth.JWTSecret), cfg.Auth.Issuer)

	mailer, err := email.NewService(&cfg.SMTP, cfg.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("failed to create email service: %w", err)
	}

	accounts := account.NewService(repo, tokens, mailer)
	events := event.NewService(repo)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupMiddleware(e)
	setupRoutes(e, handlers.New(accounts, events), tokens, repo)

	// Revocation list sweeper
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sweepRevokedTokens(sweepCtx, repo)

	return startWithGracefulShutdown(e, cfg)
}

func setupRoutes(e *echo.Echo, h *handlers.Handlers, tokens *token.Service, repo *repository.Repository) {
	e.GET("/health", h.Health)

	requireAuth := middleware.RequireAuth(tokens, repo)

	user := e.Group("/user")
	user.POST("/signup", h.Signup)
	user.POST("/login", h.Login)
	user.GET("/verify-email/:token", h.VerifyEmail)
	user.POST("/forgot-password", h.ForgotPassword)
	user.POST("/reset-password/:token", h.ResetPassword)
	user.POST("/resend-verification-email", h.ResendVerificationEmail)
	user.POST("/logout", h.Logout, requireAuth)
	user.GET("/profile", h.Profile, requireAuth)
	user.PUT("/profile", h.UpdateProfile, requireAuth)

	events := e.Group("/event", requireAuth)
	events.GET("", h.ListEvents)
	events.POST("", h.CreateEvent)
	events.GET("/:eventId", h.GetEvent)
	events.PUT("/:eventId", h.UpdateEvent)
	events.DELETE("/:eventId", h.DeleteEvent)
}

// sweepRevokedTokens prunes expired revocation list entries on a fixed
// cadence until the context is cancelled.
func sweepRevokedTokens(ctx context.Context, repo *repository.Repository) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pruned, err := repo.DeleteExpiredRevokedTokens(ctx)
			if err != nil {
				slog.Error("revocation list sweep failed", "error", err)
				continue
			}
			if pruned > 0 {
				slog.Debug("revocation list swept", "pruned", pruned)
			}
		}
	}
}

func startWithGracefulShutdown(e *echo.Echo, cfg *config.Config) error {
	errChan := make(chan error, 1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("Server running", "url", cfg.Server.BaseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
