// Package gemini implements the extraction engine backed by the Google
// Gemini API.
package gemini

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/docsnap/doc-extractor/internal/domain"
	"github.com/docsnap/doc-extractor/internal/llm/prompt"
)

// Engine sends exactly one generate-content request per Extract call,
// with the same fixed decoding parameters as the Groq engine.
type Engine struct {
	apiKey string
	model  string
}

// New creates a Gemini engine.
func New(apiKey, model string) *Engine {
	return &Engine{
		apiKey: strings.TrimSpace(apiKey),
		model:  strings.TrimSpace(model),
	}
}

// Name identifies the provider.
func (e *Engine) Name() string { return "gemini" }

// Model reports the configured model identifier.
func (e *Engine) Model() string { return e.model }

// Extract sends the payload with the fixed instruction and returns the
// model's answer verbatim. One call, no retries.
func (e *Engine) Extract(ctx context.Context, payload domain.EncodedImagePayload) (string, error) {
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.apiKey))
	if err != nil {
		return "", domain.APIError("create gemini client", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.model)
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:     ptrFloat32(0.3),
		MaxOutputTokens: ptrInt32(1024),
		TopP:            ptrFloat32(1),
	}

	resp, err := m.GenerateContent(ctx,
		genai.Text(prompt.Extraction),
		&genai.Blob{MIMEType: payload.MIME, Data: payload.Data},
	)
	if err != nil {
		return "", domain.APIError("extraction request failed", err)
	}

	text := firstText(resp)
	if text == "" {
		return "", domain.APIError("extraction service returned an empty response", nil)
	}

	return text, nil
}

// firstText returns the first text part of the first candidate carrying
// content.
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }

func ptrInt32(v int32) *int32 { return &v }
