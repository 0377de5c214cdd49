// Package llm selects and constructs the configured extraction engine.
package llm

import (
	"fmt"

	"github.com/docsnap/doc-extractor/internal/config"
	"github.com/docsnap/doc-extractor/internal/domain"
	"github.com/docsnap/doc-extractor/internal/llm/gemini"
	"github.com/docsnap/doc-extractor/internal/llm/groq"
)

// New builds the engine named by the extractor configuration. The
// credential requirement is enforced here as well as at config
// validation so the factory is safe to call with hand-built configs.
func New(cfg config.ExtractorConfig) (domain.Engine, error) {
	switch cfg.Provider {
	case "groq":
		if cfg.Groq.APIKey == "" {
			return nil, domain.ConfigError("GROQ_API_KEY not set", nil)
		}
		return groq.New(cfg.Groq.APIKey, cfg.Groq.Model, cfg.RequestTimeout), nil
	case "gemini":
		if cfg.Gemini.APIKey == "" {
			return nil, domain.ConfigError("GEMINI_API_KEY not set", nil)
		}
		return gemini.New(cfg.Gemini.APIKey, cfg.Gemini.Model), nil
	default:
		return nil, domain.ConfigError(fmt.Sprintf("unknown extractor provider %q", cfg.Provider), nil)
	}
}
