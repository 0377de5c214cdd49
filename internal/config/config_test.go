package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docsnap/doc-extractor/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "groq", cfg.Extractor.Provider)
	assert.Equal(t, DefaultGroqModel, cfg.Extractor.Groq.Model)
	assert.Equal(t, 120*time.Second, cfg.Extractor.RequestTimeout)
	assert.Equal(t, 15*time.Second, cfg.Acquire.FetchTimeout)
	assert.Equal(t, 75, cfg.Normalize.JPEGQuality)
	assert.Equal(t, int64(50<<20), cfg.Server.MaxUploadBytes)
}

func TestLoad_MissingCredential(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("EXTRACTOR_PROVIDER", "")

	_, err := Load("")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorTypeConfig, domain.TypeOf(err))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("GROQ_MODEL", "meta-llama/llama-4-maverick-17b-128e-instruct")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("FETCH_TIMEOUT", "5s")
	t.Setenv("JPEG_QUALITY", "90")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "gsk_test", cfg.Extractor.Groq.APIKey)
	assert.Equal(t, "meta-llama/llama-4-maverick-17b-128e-instruct", cfg.Extractor.Groq.Model)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Acquire.FetchTimeout)
	assert.Equal(t, 90, cfg.Normalize.JPEGQuality)
}

func TestLoad_YAMLFile(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_test")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlBody := `
server:
  port: 8181
  static_dir: /srv/static
extractor:
  provider: groq
normalize:
  jpeg_quality: 85
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "/srv/static", cfg.Server.StaticDir)
	assert.Equal(t, 85, cfg.Normalize.JPEGQuality)
	// File values fall back to defaults where unset
	assert.Equal(t, DefaultGroqModel, cfg.Extractor.Groq.Model)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
}

func TestValidate_Provider(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantErr  bool
		wantType domain.ErrorType
	}{
		{
			name: "groq with key",
			mutate: func(c *Config) {
				c.Extractor.Groq.APIKey = "gsk_test"
			},
			wantErr: false,
		},
		{
			name: "gemini without key",
			mutate: func(c *Config) {
				c.Extractor.Provider = "gemini"
			},
			wantErr:  true,
			wantType: domain.ErrorTypeConfig,
		},
		{
			name: "unknown provider",
			mutate: func(c *Config) {
				c.Extractor.Provider = "anthropic"
			},
			wantErr: true,
		},
		{
			name: "quality out of range",
			mutate: func(c *Config) {
				c.Extractor.Groq.APIKey = "gsk_test"
				c.Normalize.JPEGQuality = 0
			},
			wantErr: true,
		},
		{
			name: "bad port",
			mutate: func(c *Config) {
				c.Extractor.Groq.APIKey = "gsk_test"
				c.Server.Port = -1
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, domain.TypeOf(err))
			}
		})
	}
}
