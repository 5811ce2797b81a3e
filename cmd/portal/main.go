// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
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

	"github.com/ifportal/portal-go/internal/config"
	"github.com/ifportal/portal-go/internal/handler"
	"github.com/ifportal/portal-go/internal/middleware"
	"github.com/ifportal/portal-go/internal/render"
	"github.com/ifportal/portal-go/internal/session"
	"github.com/ifportal/portal-go/internal/store"
	"github.com/ifportal/portal-go/web"
)

func main() {
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "portal - institutional campus website backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_SESSION_SECRET     Session signing key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_DB_PATH            SQLite database path (default: ./data/portal.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_DO_SEED            Seed the enrollment whitelist on startup (default: false)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  PORTAL_ENROLLMENTS_FILE   Whitelist file (default: ./data/enrollments.txt)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
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

	// Seed the enrollment whitelist
	if cfg.DoSeed {
		if err := store.SeedEnrollments(context.Background(), db, cfg.EnrollmentsFile); err != nil {
			return fmt.Errorf("seeding enrollments: %w", err)
		}
	}

	// Initialize session manager
	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	// Initialize template renderer
	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}

	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	// Handlers
	authHandler := handler.NewAuthHandler(db, renderer, sessionManager)
	siteHandler := handler.NewSiteHandler(renderer, sessionManager)
	newsHandler := handler.NewNewsHandler(db, renderer, sessionManager)
	professorHandler := handler.NewProfessorHandler(db, renderer, sessionManager)

	// Router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(sessionManager.LoadAndSave)
	r.Use(middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.IsDevelopment())))

	// Public routes
	r.Get(handler.RouteRoot, siteHandler.Home)
	r.Get(handler.RouteRegister, authHandler.RegisterForm)
	r.Post(handler.RouteRegister, authHandler.Register)
	r.Get(handler.RouteLogin, authHandler.LoginForm)
	r.Post(handler.RouteLogin, authHandler.Login)
	r.Get(handler.RouteLogout, authHandler.Logout)
	r.Get(handler.RouteNewsPublic, newsHandler.PublicList)
	r.Get(handler.RouteProfessorsPublic, professorHandler.PublicList)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireLogin(sessionManager))
		r.Get(handler.RoutePanel, siteHandler.Panel)
		r.Get(handler.RouteNewsNew, newsHandler.NewForm)
		r.Post(handler.RouteNewsNew, newsHandler.Create)
		r.Get(handler.RouteProfessorsNew, professorHandler.NewForm)
		r.Post(handler.RouteProfessorsNew, professorHandler.Create)
		r.Get(handler.RouteNewsList, newsHandler.List)
		r.Get(handler.RouteProfessorsList, professorHandler.List)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Allow for large uploads and slow connections
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
