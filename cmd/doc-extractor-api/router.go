// Package main provides the API router setup.
package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/docsnap/doc-extractor/cmd/doc-extractor-api/handlers"
	"github.com/docsnap/doc-extractor/cmd/doc-extractor-api/middleware"
	"github.com/docsnap/doc-extractor/internal/config"
	"github.com/docsnap/doc-extractor/internal/extract"
	"github.com/docsnap/doc-extractor/internal/observability"
)

// NewRouter creates the API router with all routes configured.
func NewRouter(logger *observability.Logger, cfg *config.Config, service *extract.Service) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy","service":"doc-extractor"}`))
	})

	extractionHandler := handlers.NewExtractionHandler(logger, service, cfg.Server.MaxUploadBytes)
	inspectionHandler := handlers.NewInspectionHandler(logger, service, cfg.Server.MaxUploadBytes)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/extract", extractionHandler.Extract)
		r.Post("/inspect", inspectionHandler.Inspect)
		r.Post("/preview", inspectionHandler.Preview)
	})

	// Single-page frontend
	r.Handle("/*", http.FileServer(http.Dir(cfg.Server.StaticDir)))

	return r
}
