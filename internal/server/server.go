// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer. It decides:
// - Which URL patterns map to which handler functions
// - What middleware runs on which routes
// - How the server starts and stops gracefully
//
// DEPENDENCY INJECTION FLOW:
// main.go creates:
//
//	config.Config, *slog.Logger, github.Client → passed to New
//	New creates: ProfileService, SearchService → ProfileHandler, UserSearchHandler
//
// This is the "composition root": all dependencies are wired in one place
// (New/setupRoutes), rather than scattered across the codebase.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/sakif/devfinder/internal/config"
	"github.com/sakif/devfinder/internal/handler"
	"github.com/sakif/devfinder/internal/middleware"
	"github.com/sakif/devfinder/internal/service"
	"github.com/sakif/devfinder/web"
)

// ShutdownTimeout is how long in-flight requests get after SIGINT/SIGTERM.
const ShutdownTimeout = 30 * time.Second

// GitHub is everything the server needs from the Remote Data Client.
// *github.Client satisfies it; tests pass a fake.
type GitHub interface {
	service.ProfileFetcher
	service.CandidateSearcher
}

// Server represents the HTTP server and all its dependencies.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	github GitHub
}

// New creates a Server and wires its routes.
//
// Each layer only receives what it needs:
// - Services get the GitHub interfaces (not the concrete client)
// - Handlers get the services (not the client)
func New(cfg config.Config, logger *slog.Logger, gh GitHub) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		github: gh,
	}

	if err := s.setupRoutes(); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET /                   → Profile page (HTML), ?q=<login>
// GET /resources/users    → User search for the combobox (HTML fragment or JSON)
// GET /static/*           → Embedded CSS and JavaScript
// GET /healthz            → Liveness probe (JSON)
// anything else           → Error boundary, 404
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID: assigns unique ID to each request (for tracing)
// 2. RealIP: extracts real client IP from proxy headers
// 3. Recoverer: catches panics and returns 500 instead of crashing
// 4. Logger: logs each request with timing info and the request ID
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// === Static Files ===
	// GET /static/app.css → serves static/app.css from the embedded FS
	static, err := fs.Sub(web.Static, "static")
	if err != nil {
		return fmt.Errorf("opening static files: %w", err)
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// === Pages ===
	pages, err := handler.NewPages(web.Templates, s.logger)
	if err != nil {
		return fmt.Errorf("creating pages: %w", err)
	}

	profileService := service.NewProfileService(s.github, s.config.DefaultLogin, s.logger)
	profileHandler := handler.NewProfileHandler(profileService, pages, s.logger)

	searchService := service.NewSearchService(s.github, s.logger)
	searchHandler := handler.NewUserSearchHandler(searchService, pages, s.logger)

	s.router.Get("/", profileHandler.HandleProfile)
	s.router.Get("/healthz", handler.HandleHealth)

	s.router.Route("/resources", func(r chi.Router) {
		r.Get("/users", searchHandler.HandleSearch)
	})

	s.router.NotFound(pages.HandleNotFound)
	return nil
}

// Handler returns the router, for tests and for embedding in another server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured port and blocks until SIGINT or SIGTERM,
// then shuts down gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.config.Port))
	if err != nil {
		return fmt.Errorf("listening on port %d: %w", s.config.Port, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
//
// GRACEFUL SHUTDOWN:
// Two goroutines run in an errgroup. One serves HTTP; the other waits for
// ctx and then calls Shutdown, which stops accepting connections and gives
// in-flight requests ShutdownTimeout to finish. If serving fails, the group
// context is cancelled and the shutdown goroutine exits too.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting",
			slog.String("addr", ln.Addr().String()),
			slog.String("github_host", s.config.GitHubHost),
			slog.String("default_login", s.config.DefaultLogin),
		)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}
