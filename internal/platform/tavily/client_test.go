package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizlight/quizlight-api/internal/config"
)

func TestNewClient(t *testing.T) {
	t.Parallel()

	t.Run("requires an api key", func(t *testing.T) {
		t.Parallel()
		_, err := NewClient(config.SearchConfig{}, nil)
		assert.Error(t, err)
	})

	t.Run("defaults the base url and result cap", func(t *testing.T) {
		t.Parallel()
		c, err := NewClient(config.SearchConfig{TavilyAPIKey: "tvly-test"}, nil)
		require.NoError(t, err)
		assert.Equal(t, defaultBaseURL, c.baseURL)
		assert.Equal(t, 5, c.maxResults)
	})
}

func TestSearch(t *testing.T) {
	t.Parallel()

	t.Run("parses results and forwards the query", func(t *testing.T) {
		t.Parallel()
		var gotReq searchRequest
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

			_ = json.NewEncoder(w).Encode(map[string]any{
				"results": []map[string]string{
					{"title": "Photosynthesis", "url": "https://en.example/photo", "content": "Plants convert light."},
					{"title": "Chlorophyll", "url": "https://en.example/chloro", "content": "Green pigment."},
				},
			})
		}))
		defer srv.Close()

		c, err := NewClient(config.SearchConfig{
			TavilyAPIKey: "tvly-test",
			BaseURL:      srv.URL,
			MaxResults:   5,
		}, nil)
		require.NoError(t, err)

		results, err := c.Search(context.Background(), "photosynthesis")
		require.NoError(t, err)
		require.Len(t, results, 2)
		assert.Equal(t, "Photosynthesis", results[0].Title)
		assert.Equal(t, "https://en.example/photo", results[0].URL)
		assert.Equal(t, "Plants convert light.", results[0].Snippet)

		assert.Equal(t, "photosynthesis", gotReq.Query)
		assert.Equal(t, "tvly-test", gotReq.APIKey)
		assert.Equal(t, 5, gotReq.MaxResults)
	})

	t.Run("caps results beyond the configured maximum", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			many := make([]map[string]string, 8)
			for i := range many {
				many[i] = map[string]string{"title": "t", "url": "https://t.example", "content": "c"}
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"results": many})
		}))
		defer srv.Close()

		c, err := NewClient(config.SearchConfig{
			TavilyAPIKey: "tvly-test",
			BaseURL:      srv.URL,
			MaxResults:   3,
		}, nil)
		require.NoError(t, err)

		results, err := c.Search(context.Background(), "anything")
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		}))
		defer srv.Close()

		c, err := NewClient(config.SearchConfig{TavilyAPIKey: "bad", BaseURL: srv.URL}, nil)
		require.NoError(t, err)

		_, err = c.Search(context.Background(), "anything")
		assert.ErrorContains(t, err, "status 401")
	})
}
