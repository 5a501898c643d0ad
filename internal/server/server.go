// Package server exposes the corpus and the question pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/DonMrMango/matriz-legal-ISO27001/internal/analytics"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/chat"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/library"
	"github.com/DonMrMango/matriz-legal-ISO27001/internal/search"
)

// Config holds server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
	AdminToken     string
	// ProviderName identifies the generation backend in analytics events.
	ProviderName string
}

// Server is the matrizlegal HTTP server.
type Server struct {
	cfg        Config
	lib        *library.Library
	scorer     *search.Scorer
	chatSvc    *chat.Service
	events     *analytics.Store
	router     chi.Router
	httpServer *http.Server
}

// New creates a server over the given corpus library, scorer, and chat
// service. events may be nil to disable usage recording.
func New(cfg Config, lib *library.Library, scorer *search.Scorer, chatSvc *chat.Service, events *analytics.Store) *Server {
	s := &Server{
		cfg:     cfg,
		lib:     lib,
		scorer:  scorer,
		chatSvc: chatSvc,
		events:  events,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Admin-Token"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/documents", s.handleListDocuments)
		r.Get("/documents/{id}/content", s.handleDocumentContent)
		r.Get("/search", s.handleSearch)
		r.Get("/stats", s.handleStats)
		r.Post("/chat", s.handleChat)
		r.Get("/chat/ws", s.handleWebSocket)
	})

	// Further API routes (privacy, analytics) are registered by feature
	// packages via RegisterRoutes on Router().

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("matrizlegal server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
