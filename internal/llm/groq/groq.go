// Package groq implements the extraction engine backed by the Groq
// chat-completions endpoint.
package groq

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/docsnap/doc-extractor/internal/domain"
	"github.com/docsnap/doc-extractor/internal/llm/prompt"
)

const defaultEndpoint = "https://api.groq.com/openai/v1/chat/completions"

// Fixed decoding parameters. These are configuration, not user-tunable.
const (
	temperature         = 0.3
	maxCompletionTokens = 1024
	topP                = 1
)

// Engine sends exactly one chat-completions request per Extract call.
// No retries, no streaming.
type Engine struct {
	apiKey   string
	model    string
	endpoint string
	httpc    *http.Client
}

// New creates a Groq engine. The timeout bounds the single request; zero
// means no client-side bound beyond the caller's context.
func New(apiKey, model string, timeout time.Duration) *Engine {
	return &Engine{
		apiKey:   apiKey,
		model:    model,
		endpoint: defaultEndpoint,
		httpc:    &http.Client{Timeout: timeout},
	}
}

// Name identifies the provider.
func (e *Engine) Name() string { return "groq" }

// Model reports the configured model identifier.
func (e *Engine) Model() string { return e.model }

// Message represents a chat message.
type Message struct {
	Role    string        `json:"role"`
	Content []ContentPart `json:"content"`
}

// ContentPart represents a part of message content (text or image).
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL carries the base64 data URL for the image part.
type ImageURL struct {
	URL string `json:"url"`
}

// Request represents the API request structure.
type Request struct {
	Model               string    `json:"model"`
	Messages            []Message `json:"messages"`
	Temperature         float64   `json:"temperature"`
	MaxCompletionTokens int       `json:"max_completion_tokens"`
	TopP                float64   `json:"top_p"`
	Stream              bool      `json:"stream"`
}

// Response represents the API response structure.
type Response struct {
	ID      string   `json:"id"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
}

// Choice represents a single completion choice.
type Choice struct {
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

// ChoiceMessage is the assistant message inside a choice.
type ChoiceMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Extract sends the payload with the fixed instruction and returns the
// model's answer verbatim.
func (e *Engine) Extract(ctx context.Context, payload domain.EncodedImagePayload) (string, error) {
	body, err := json.Marshal(e.buildRequest(payload))
	if err != nil {
		return "", domain.APIError("marshal extraction request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", domain.APIError("build extraction request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", domain.APIError("extraction request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", domain.APIError(
			fmt.Sprintf("extraction service returned status %d: %s", resp.StatusCode, excerpt), nil)
	}

	var parsed Response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", domain.APIError("decode extraction response", err)
	}
	if len(parsed.Choices) == 0 {
		return "", domain.APIError("extraction service returned no choices", nil)
	}

	return parsed.Choices[0].Message.Content, nil
}

// buildRequest embeds the payload as a data URL next to the instruction
// text in a single user message.
func (e *Engine) buildRequest(payload domain.EncodedImagePayload) *Request {
	dataURL := fmt.Sprintf("data:%s;base64,%s",
		payload.MIME, base64.StdEncoding.EncodeToString(payload.Data))

	msg := Message{
		Role: "user",
		Content: []ContentPart{
			{Type: "text", Text: prompt.Extraction},
			{Type: "image_url", ImageURL: &ImageURL{URL: dataURL}},
		},
	}

	return &Request{
		Model:               e.model,
		Messages:            []Message{msg},
		Temperature:         temperature,
		MaxCompletionTokens: maxCompletionTokens,
		TopP:                topP,
		Stream:              false,
	}
}
