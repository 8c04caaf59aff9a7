// Copyright (c) 2026 FAF Community Wiki contributors
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

	"github.com/fafcommunity/fafwiki/internal/config"
	"github.com/fafcommunity/fafwiki/internal/handler"
	"github.com/fafcommunity/fafwiki/internal/logging"
	"github.com/fafcommunity/fafwiki/internal/middleware"
	"github.com/fafcommunity/fafwiki/internal/service"
	"github.com/fafcommunity/fafwiki/internal/session"
	"github.com/fafcommunity/fafwiki/internal/store"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("fafwiki %s (%s)\n", appVersion, appGitCommit)
		return
	}

	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
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
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(textHandler))

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

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

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade the logger so WARN and ERROR records also land in the
	// events table.
	slog.SetDefault(slog.New(logging.NewEventLogHandler(textHandler, db)))

	ctx := context.Background()
	if err := store.Seed(ctx, db); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}
	if err := store.SeedDemo(ctx, db, cfg.DoSeed); err != nil {
		return fmt.Errorf("seeding demo content: %w", err)
	}

	sessionManager := session.New(db, cfg.IsDevelopment())

	eventService := service.NewEventService(db)
	permService := service.NewPermissionService(db)
	contentService := service.NewContentService(db, permService, eventService)

	authHandler := handler.NewAuthHandler(db, sessionManager, eventService)
	contentHandler := handler.NewContentHandler(contentService, permService)
	teamsHandler := handler.NewTeamsHandler(db)
	reviewsHandler := handler.NewReviewsHandler(db)
	statsHandler := handler.NewStatsHandler(db)
	eventsHandler := handler.NewEventsHandler(eventService)

	writeLimiter := middleware.NewWriteRateLimiter(cfg.WriteRateLimit, cfg.WriteRateBurst)

	var trustedOrigins []string
	if cfg.IsDevelopment() {
		trustedOrigins = []string{
			fmt.Sprintf("localhost:%d", cfg.ServerPort),
			fmt.Sprintf("127.0.0.1:%d", cfg.ServerPort),
		}
	}
	csrfMiddleware := middleware.CSRF([]byte(cfg.SessionSecret), trustedOrigins)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.LoadUser(sessionManager, db))

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := db.PingContext(req.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(csrfMiddleware)
		r.Use(writeLimiter.Middleware)

		r.Post("/login", authHandler.Login)
		r.Get("/logout", authHandler.Logout)
		r.Post("/logout", authHandler.Logout)

		r.Route("/api", func(r chi.Router) {
			r.Get("/authorize", contentHandler.Authorize)
			r.Get("/buttons", contentHandler.ListButtons)
			r.Get("/page/*", contentHandler.GetContent)
			r.Put("/page/*", contentHandler.UpdateContent)
			r.With(middleware.RequireAuth).Post("/button", contentHandler.CreateButton)
			r.With(middleware.RequireAuth).Put("/block", contentHandler.UpdateBlock)

			r.Get("/teams", teamsHandler.List)
			r.Get("/teams/{slug}", teamsHandler.Get)
			r.Get("/reviews", reviewsHandler.List)
			r.Get("/stats", statsHandler.Get)
			r.With(middleware.RequireAuth).Get("/events", eventsHandler.List)
		})
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
