// Package tavily implements a minimal client for the Tavily search API,
// adapting it to the assistant's SearchClient interface.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/quizlight/quizlight-api/internal/assistant"
	"github.com/quizlight/quizlight-api/internal/config"
)

// defaultBaseURL is the production search endpoint.
const defaultBaseURL = "https://api.tavily.com"

// defaultTimeout bounds a single search call. Search is best-effort for the
// answer pipeline, so a slow upstream should fail fast rather than stall the
// whole request.
const defaultTimeout = 10 * time.Second

// Client calls the Tavily /search endpoint.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxResults int
	logger     *slog.Logger
}

// NewClient creates a Client from the search configuration. It fails when no
// API key is configured.
func NewClient(cfg config.SearchConfig, log *slog.Logger) (*Client, error) {
	if cfg.TavilyAPIKey == "" {
		return nil, fmt.Errorf("tavily api key is required")
	}
	if log == nil {
		log = slog.Default()
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = assistant.DefaultMaxWebResults
	}

	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    baseURL,
		apiKey:     cfg.TavilyAPIKey,
		maxResults: maxResults,
		logger:     log.With(slog.String("component", "tavily_client")),
	}, nil
}

type searchRequest struct {
	APIKey      string `json:"api_key"`
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth"`
}

type searchResponse struct {
	Results []struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Content string `json:"content"`
	} `json:"results"`
}

// Search runs one search query and returns at most the configured number of
// results.
func (c *Client) Search(ctx context.Context, query string) ([]assistant.WebResult, error) {
	body, err := json.Marshal(searchRequest{
		APIKey:      c.apiKey,
		Query:       query,
		MaxResults:  c.maxResults,
		SearchDepth: "basic",
	})
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling search api: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain a bounded amount so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("search api returned status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	results := make([]assistant.WebResult, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		if len(results) == c.maxResults {
			break
		}
		results = append(results, assistant.WebResult{
			Title:   r.Title,
			URL:     r.URL,
			Snippet: r.Content,
		})
	}

	c.logger.DebugContext(ctx, "search completed",
		slog.Int("result_count", len(results)))
	return results, nil
}
