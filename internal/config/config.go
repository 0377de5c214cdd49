// Package config provides unified configuration loading for the extractor.
// Supports YAML files, environment variables, and a .env file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/docsnap/doc-extractor/internal/domain"
)

// Default model identifiers per provider.
const (
	DefaultGroqModel   = "meta-llama/llama-4-scout-17b-16e-instruct"
	DefaultGeminiModel = "gemini-2.0-flash"
)

// Config holds all configuration for the extractor.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Extractor     ExtractorConfig     `yaml:"extractor"`
	Acquire       AcquireConfig       `yaml:"acquire"`
	Normalize     NormalizeConfig     `yaml:"normalize"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
	StaticDir        string        `yaml:"static_dir"`
	MaxUploadBytes   int64         `yaml:"max_upload_bytes"`
}

// ExtractorConfig holds extraction service settings.
type ExtractorConfig struct {
	Provider       string        `yaml:"provider"` // groq or gemini
	Groq           GroqConfig    `yaml:"groq"`
	Gemini         GeminiConfig  `yaml:"gemini"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

// GroqConfig holds Groq chat-completions settings.
type GroqConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// GeminiConfig holds Gemini settings.
type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// AcquireConfig holds input acquisition settings.
type AcquireConfig struct {
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
}

// NormalizeConfig holds image normalization settings.
type NormalizeConfig struct {
	JPEGQuality int `yaml:"jpeg_quality"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Load reads configuration from a YAML file and applies environment
// overrides. A .env file in the working directory is folded into the
// environment first; a missing file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8080,
			ReadTimeout:      30 * time.Second,
			WriteTimeout:     180 * time.Second,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 10 * time.Second,
			StaticDir:        "web/static",
			MaxUploadBytes:   50 << 20,
		},
		Extractor: ExtractorConfig{
			Provider: "groq",
			Groq: GroqConfig{
				Model: DefaultGroqModel,
			},
			Gemini: GeminiConfig{
				Model: DefaultGeminiModel,
			},
			RequestTimeout: 120 * time.Second,
		},
		Acquire: AcquireConfig{
			FetchTimeout: 15 * time.Second,
		},
		Normalize: NormalizeConfig{
			JPEGQuality: 75,
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "console",
		},
	}
}

// Validate checks the configuration for errors. A missing credential for
// the selected provider is a configuration error that halts startup.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.MaxUploadBytes < 1 {
		return fmt.Errorf("max_upload_bytes must be positive")
	}

	if c.Normalize.JPEGQuality < 1 || c.Normalize.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be between 1 and 100")
	}

	switch c.Extractor.Provider {
	case "groq":
		if c.Extractor.Groq.APIKey == "" {
			return domain.ConfigError("GROQ_API_KEY not set", nil)
		}
	case "gemini":
		if c.Extractor.Gemini.APIKey == "" {
			return domain.ConfigError("GEMINI_API_KEY not set", nil)
		}
	default:
		return fmt.Errorf("invalid extractor provider: %s", c.Extractor.Provider)
	}

	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}

	if v := os.Getenv("SERVER_PORT"); v != "" {
		var port int
		if _, err := fmt.Sscanf(v, "%d", &port); err == nil {
			cfg.Server.Port = port
		}
	}

	if v := os.Getenv("STATIC_DIR"); v != "" {
		cfg.Server.StaticDir = v
	}

	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		var n int64
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil {
			cfg.Server.MaxUploadBytes = n
		}
	}

	if v := os.Getenv("EXTRACTOR_PROVIDER"); v != "" {
		cfg.Extractor.Provider = v
	}

	if v := os.Getenv("GROQ_API_KEY"); v != "" {
		cfg.Extractor.Groq.APIKey = v
	}

	if v := os.Getenv("GROQ_MODEL"); v != "" {
		cfg.Extractor.Groq.Model = v
	}

	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.Extractor.Gemini.APIKey = v
	}

	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.Extractor.Gemini.Model = v
	}

	if v := os.Getenv("EXTRACT_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Extractor.RequestTimeout = d
		}
	}

	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Acquire.FetchTimeout = d
		}
	}

	if v := os.Getenv("JPEG_QUALITY"); v != "" {
		var q int
		if _, err := fmt.Sscanf(v, "%d", &q); err == nil {
			cfg.Normalize.JPEGQuality = q
		}
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}
