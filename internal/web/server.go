package web

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/fotokiosk/kiosk/internal/config"
	"github.com/fotokiosk/kiosk/internal/dispatch"
	"github.com/fotokiosk/kiosk/internal/formats"
	"github.com/fotokiosk/kiosk/internal/render"
	"github.com/fotokiosk/kiosk/internal/web/middleware"
)

// Server is the kiosk's HTTP API for the POS front end.
type Server struct {
	config     *config.Config
	router     *chi.Mux
	httpServer *http.Server

	db         *sql.DB
	registry   *formats.Registry
	renderer   *render.Renderer
	dispatcher *dispatch.Dispatcher
}

// NewServer creates a new web server.
func NewServer(cfg *config.Config, port int, host string, db *sql.DB, registry *formats.Registry) *Server {
	r := chi.NewRouter()

	renderer := render.New()
	renderer.SmartOrientation = cfg.Render.SmartOrientation

	dispatcher := &dispatch.Dispatcher{
		DB:            db,
		Registry:      registry,
		Renderer:      renderer,
		PrintBasePath: cfg.Paths.PrintBase,
		TempUploadDir: cfg.Paths.TempUploads,
		RenderTimeout: time.Duration(cfg.Render.TimeoutSeconds) * time.Second,
	}

	s := &Server{
		config:     cfg,
		router:     r,
		db:         db,
		registry:   registry,
		renderer:   renderer,
		dispatcher: dispatcher,
	}

	// Set up middleware stack
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(5 * time.Minute))
	r.Use(middleware.CORS())

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // long timeout for uploads and dispatch
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	log.Printf("Starting kiosk server on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down kiosk server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}
	return nil
}

// Router returns the chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
