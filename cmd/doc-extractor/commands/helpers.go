package commands

import (
	"github.com/docsnap/doc-extractor/internal/acquire"
	"github.com/docsnap/doc-extractor/internal/config"
	"github.com/docsnap/doc-extractor/internal/extract"
	"github.com/docsnap/doc-extractor/internal/llm"
	"github.com/docsnap/doc-extractor/internal/observability"
	"github.com/docsnap/doc-extractor/internal/pdf"
)

// newService assembles the extraction pipeline from the loaded
// configuration. An empty modelOverride keeps the configured model.
func newService(modelOverride string) (*extract.Service, *config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	if modelOverride != "" {
		cfg.Extractor.Groq.Model = modelOverride
		cfg.Extractor.Gemini.Model = modelOverride
	}

	level := "error"
	if verbose {
		level = "debug"
	}
	logger := observability.NewLogger(observability.LogConfig{
		Level:       level,
		Format:      "console",
		ServiceName: "doc-extractor",
	})

	engine, err := llm.New(cfg.Extractor)
	if err != nil {
		return nil, nil, err
	}

	fetcher := acquire.NewFetcher(cfg.Acquire.FetchTimeout, logger)
	rasterizer := pdf.NewRasterizer()
	service := extract.NewService(rasterizer, engine, fetcher,
		cfg.Normalize.JPEGQuality, cfg.Extractor.RequestTimeout, logger)

	return service, cfg, nil
}
