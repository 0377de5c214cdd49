// Package main provides the doc-extractor API server entrypoint.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/docsnap/doc-extractor/internal/acquire"
	"github.com/docsnap/doc-extractor/internal/config"
	"github.com/docsnap/doc-extractor/internal/extract"
	"github.com/docsnap/doc-extractor/internal/llm"
	"github.com/docsnap/doc-extractor/internal/observability"
	"github.com/docsnap/doc-extractor/internal/pdf"
)

func main() {
	// Load configuration
	cfgPath := os.Getenv("CONFIG_PATH")
	if len(os.Args) > 2 && os.Args[1] == "--config" {
		cfgPath = os.Args[2]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "doc-extractor-api",
	})

	// Build the extraction pipeline
	engine, err := llm.New(cfg.Extractor)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create extraction engine")
	}

	fetcher := acquire.NewFetcher(cfg.Acquire.FetchTimeout, logger)
	rasterizer := pdf.NewRasterizer()
	service := extract.NewService(rasterizer, engine, fetcher,
		cfg.Normalize.JPEGQuality, cfg.Extractor.RequestTimeout, logger)

	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("engine", engine.Name()).
		Str("model", engine.Model()).
		Msg("Starting doc-extractor API")

	router := NewRouter(logger, cfg, service)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr()).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt or error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error().Err(err).Msg("Server error")
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("Forced shutdown failed")
		}
	}

	logger.Info().Msg("Server stopped")
}
