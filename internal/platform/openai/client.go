// Package openai adapts the OpenAI chat completions API to the assistant's
// CompletionClient interface.
package openai

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/quizlight/quizlight-api/internal/config"
)

// Client wraps the go-openai SDK behind the single Complete call the answer
// pipeline needs.
type Client struct {
	api    *openai.Client
	model  string
	logger *slog.Logger
}

// NewClient creates a Client from the LLM configuration. It fails when no
// API key is configured.
func NewClient(cfg config.LLMConfig, log *slog.Logger) (*Client, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if log == nil {
		log = slog.Default()
	}

	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}

	return &Client{
		api:    openai.NewClientWithConfig(clientCfg),
		model:  cfg.OpenAIModel,
		logger: log.With(slog.String("component", "openai_client")),
	}, nil
}

// Complete performs one non-streaming chat completion and returns the text of
// the first choice. An empty choice list yields an empty string, not an
// error; the caller decides how to treat empty completions.
func (c *Client) Complete(ctx context.Context, system, prompt string, temperature float32) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		c.logger.DebugContext(ctx, "completion returned no choices",
			slog.String("model", c.model))
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
