package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/oakmund/registrar/internal/config"
	"github.com/oakmund/registrar/internal/database"
	"github.com/oakmund/registrar/internal/web/handlers"
	"github.com/oakmund/registrar/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	db         *database.DB
	port       int
	bind       string
	allowedNet *net.IPNet
	router     *chi.Mux
	handlers   *handlers.Handlers
}

// NewServer creates a new web server
func NewServer(db *database.DB, port int, bind string, allowedNet *net.IPNet) *Server {
	s := &Server{
		db:         db,
		port:       port,
		bind:       bind,
		allowedNet: allowedNet,
		router:     chi.NewRouter(),
	}

	s.setupRoutes()

	return s
}

// Router returns the chi router, useful for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	r := s.router

	// Global middleware
	r.Use(chimiddleware.RequestID)
	// AllowSubnet must come BEFORE RealIP so we check the actual connection source
	r.Use(middleware.AllowSubnet(s.allowedNet))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(config.GetTimeouts().Request))

	h := handlers.New(s.db)
	s.handlers = h

	r.Route("/students", func(r chi.Router) {
		r.Post("/", h.StudentCreate)
		r.Get("/", h.StudentList)
		r.Get("/{id}", h.StudentGet)
		r.Put("/{id}", h.StudentUpdate)
		r.Delete("/{id}", h.StudentDelete)
		r.Get("/gender/{gender}", h.StudentListByGender)
		r.Get("/course/{course}", h.StudentListByCourse)
		r.Get("/name/{name}", h.StudentGetByName)
	})
}

// Start starts the web server and blocks until ctx is canceled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	var addr string
	if s.bind != "" {
		addr = fmt.Sprintf("%s:%d", s.bind, s.port)
	} else {
		addr = fmt.Sprintf(":%d", s.port)
	}

	server := &http.Server{
		Addr:    addr,
		Handler: s.router,
		// ReadTimeout is for reading request body
		ReadTimeout: 15 * time.Second,
		// Chi middleware timeout protects individual requests
		WriteTimeout: 0,
		// IdleTimeout for keep-alive connections between requests
		IdleTimeout: 120 * time.Second,
	}

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetTimeouts().Shutdown)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
