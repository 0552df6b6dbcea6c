// Package gemini adapts the Google Gemini API to the assistant's
// CompletionClient interface. It is the alternative generative backend, used
// when an OpenAI key is not configured.
package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/genai"

	"github.com/quizlight/quizlight-api/internal/config"
)

// Client wraps the genai SDK behind the single Complete call the answer
// pipeline needs.
type Client struct {
	api    *genai.Client
	model  string
	logger *slog.Logger
}

// NewClient creates a Client from the LLM configuration. It fails when no
// API key is configured or the underlying SDK client cannot be constructed.
func NewClient(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (*Client, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if log == nil {
		log = slog.Default()
	}

	api, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Client{
		api:    api,
		model:  cfg.GeminiModel,
		logger: log.With(slog.String("component", "gemini_client")),
	}, nil
}

// Complete performs one non-streaming generation and returns the
// concatenated text of the first candidate. A candidate with no text yields
// an empty string, not an error.
func (c *Client) Complete(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(temperature),
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}

	resp, err := c.api.Models.GenerateContent(ctx, c.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		c.logger.DebugContext(ctx, "generation returned no text",
			slog.String("model", c.model))
	}
	return text, nil
}
