// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer. It connects the content store, services,
// handlers and middleware, and decides:
// - Which backend the site reads from (sqlite, postgres, postgrest or a file)
// - Which URL patterns map to which handler functions
// - What middleware runs on which routes
// - How the server starts and stops gracefully
//
// DEPENDENCY INJECTION FLOW:
//
//	config.Config → OpenStore → repository.Store
//	Store → ContentService / ContactService / AdminService
//	services → PageHandler / APIHandler / AdminHandler → chi routes
//
// This is the "composition root" pattern: all dependencies are wired in one
// place (New/routes), rather than scattered across the codebase.
package server

import (
	"context"
	"errors"
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
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/portfolio/internal/auth"
	"github.com/sakif/portfolio/internal/config"
	"github.com/sakif/portfolio/internal/handler"
	"github.com/sakif/portfolio/internal/middleware"
	"github.com/sakif/portfolio/internal/repository"
	"github.com/sakif/portfolio/internal/repository/memory"
	"github.com/sakif/portfolio/internal/repository/postgres"
	"github.com/sakif/portfolio/internal/repository/postgrest"
	sqliteRepo "github.com/sakif/portfolio/internal/repository/sqlite"
	"github.com/sakif/portfolio/internal/seed"
	"github.com/sakif/portfolio/internal/service"
	"github.com/sakif/portfolio/web"
)

// shutdownTimeout is how long in-flight requests get after SIGINT/SIGTERM.
const shutdownTimeout = 30 * time.Second

// OpenStore connects to the backend named by cfg.Backend.
//
// The "file" backend is an in-memory store filled from CONTENT_FILE; the file
// is schema-checked first, so a typo stops startup instead of serving half a
// site.
func OpenStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.Store, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		// os.MkdirAll creates all parent directories if needed (like `mkdir -p`).
		if cfg.DBPath != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		db, err := sqliteRepo.New(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		return db, nil

	case config.BackendPostgres:
		db, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return db, nil

	case config.BackendPostgREST:
		client, err := postgrest.New(ctx, cfg.PostgRESTURL, cfg.PostgRESTAPIKey)
		if err != nil {
			return nil, err
		}
		return client, nil

	case config.BackendFile:
		doc, err := seed.LoadFile(cfg.ContentFile)
		if err != nil {
			return nil, err
		}
		store := memory.New()
		sum, err := seed.Apply(ctx, doc, store, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("content file loaded",
			slog.String("file", cfg.ContentFile),
			slog.Int("timeline", sum.Timeline),
			slog.Int("skills", sum.Skills),
			slog.Int("projects", sum.Projects),
		)
		return store, nil
	}
	return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the store. When the server shuts down we close it, which
// flushes SQLite's WAL or returns pooled Postgres connections.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	store  repository.Store
}

// New wires services and handlers around store and builds the router.
// The server takes ownership of store and closes it when Start returns.
func New(cfg *config.Config, store repository.Store, logger *slog.Logger) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}

	if err := s.routes(); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// routes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET    /                      → Home page (timeline, skills, projects, contact)
// GET    /skills                → Skills page
// GET    /education             → Education page
// GET    /projects              → Projects page
// POST   /contact/unlock        → Contact panel fragment (rate limited)
// GET    /resume                → resume.pdf download
// GET    /static/*              → Files from STATIC_DIR
// GET    /assets/*              → Embedded stylesheet
// GET    /api/timeline          → Timeline (JSON)
// GET    /api/skills            → Skill groups (JSON)
// GET    /api/projects          → Projects (JSON)
// POST   /api/contact/unlock    → Contact details (JSON, rate limited)
// GET    /healthz               → Liveness
// POST   /admin/login           → Admin session cookie
// POST   /admin/logout          → Clears the cookie
// *      /api/admin/*           → Content edits (requires the cookie)
//
// MIDDLEWARE ORDER MATTERS:
// RequestID runs first so the logger can print it; RealIP runs before the
// rate limiter so clients behind a proxy are told apart.
func (s *Server) routes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(chimiddleware.Timeout(s.config.RequestTimeout))

	// === Static Files ===
	if s.config.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(s.config.StaticDir))
		s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}
	assets, err := fs.Sub(web.Assets, "assets")
	if err != nil {
		return fmt.Errorf("opening embedded assets: %w", err)
	}
	s.router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(assets)))

	// === Services ===
	contentSvc := service.NewContentService(s.store, s.logger)
	contactSvc := service.NewContactService(s.store, s.logger)

	limiter := middleware.NewClientLimiter(s.config.UnlockRatePerMinute, s.config.UnlockBurst)
	if limiter == nil {
		s.logger.Warn("UNLOCK_RATE_PER_MINUTE is 0, contact unlock is not rate limited")
	}

	// === Page Routes ===
	site := handler.Site{
		Name:    s.config.SiteName,
		Tagline: s.config.SiteTagline,
		About:   s.config.SiteAbout,
	}
	pages, err := handler.NewPageHandler(contentSvc, contactSvc, site, s.config.StaticDir, web.Templates, s.logger)
	if err != nil {
		return fmt.Errorf("creating page handler: %w", err)
	}
	s.router.Get("/", pages.HandleHome)
	s.router.Get("/skills", pages.HandleSkills)
	s.router.Get("/education", pages.HandleEducation)
	s.router.Get("/projects", pages.HandleProjects)
	s.router.Get("/resume", pages.HandleResume)
	s.router.With(middleware.RateLimit(limiter, http.HandlerFunc(pages.HandleUnlockLimited))).
		Post("/contact/unlock", pages.HandleUnlock)

	// === Admin ===
	// Login and logout are always mounted; without a JWT secret and an admin
	// account, login answers 403 and the /api/admin group does not exist.
	var tokens *auth.TokenService
	if s.config.JWTSecret != "" {
		tokens, err = auth.NewTokenService(s.config.JWTSecret)
		if err != nil {
			return fmt.Errorf("creating token service: %w", err)
		}
	}
	creds := auth.Credentials{Username: s.config.AdminUsername, PasswordHash: s.config.AdminPasswordHash}
	adminSvc := service.NewAdminService(s.store, creds, auth.NewPasswordService(), tokens, s.logger)
	admin := handler.NewAdminHandler(adminSvc, s.config.CookieSecure, s.logger)
	if !adminSvc.Enabled() {
		s.logger.Warn("JWT_SECRET or admin credentials not set, admin API is disabled")
	}

	s.router.Post("/admin/login", admin.HandleLogin)
	s.router.Post("/admin/logout", admin.HandleLogout)

	// === API Routes ===
	api := handler.NewAPIHandler(contentSvc, contactSvc, s.logger)
	s.router.Get("/healthz", api.HandleHealth)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/timeline", api.HandleTimeline)
		r.Get("/skills", api.HandleSkills)
		r.Get("/projects", api.HandleProjects)
		r.With(middleware.RateLimit(limiter, http.HandlerFunc(api.HandleUnlockLimited))).
			Post("/contact/unlock", api.HandleUnlock)

		if !adminSvc.Enabled() {
			return
		}
		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin(tokens))
			r.Post("/timeline", admin.HandleCreateTimeline)
			r.Post("/skills", admin.HandleCreateSkill)
			r.Post("/projects", admin.HandleCreateProject)
			r.Put("/contact", admin.HandleSaveContact)
			r.Delete("/{table}/{id}", admin.HandleDelete)
		})
	})
	return nil
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the store
func (s *Server) Start() error {
	defer func() {
		if err := s.store.Close(); err != nil {
			s.logger.Error("closing store", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      s.config.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("backend", s.config.Backend),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
