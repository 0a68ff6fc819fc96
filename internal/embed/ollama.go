// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"github.com/sanjit30/AdvisorMatch/internal/httputil"
	"github.com/sanjit30/AdvisorMatch/pkg/types"
)

const apiPathEmbeddings = "/api/embeddings"

// OllamaClient generates embeddings through an Ollama-compatible HTTP API.
// Requests retry on HTTP 429 and are throttled by an optional rate limiter.
type OllamaClient struct {
	baseURL    string
	model      string
	dimensions int
	client     *http.Client
	limiter    *rate.Limiter
	apiKey     string
}

// OllamaOption configures an OllamaClient.
type OllamaOption func(*OllamaClient)

// WithHTTPClient replaces the underlying HTTP client. Tests use this to
// point at an httptest server with no real timeout.
func WithHTTPClient(c *http.Client) OllamaOption {
	return func(o *OllamaClient) { o.client = c }
}

// WithAPIKey sets a bearer token for hosted embedding endpoints. Local
// Ollama ignores it.
func WithAPIKey(key string) OllamaOption {
	return func(o *OllamaClient) { o.apiKey = key }
}

// NewOllamaClient builds a client from config. Zero-value config fields fall
// back to the defaults in types.DefaultEngineConfig.
func NewOllamaClient(cfg types.EmbedderConfig, opts ...OllamaOption) *OllamaClient {
	defaults := types.DefaultEngineConfig().Embedder
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaults.Model
	}
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = defaults.Dimensions
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}

	c := &OllamaClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		dimensions: cfg.Dimensions,
		client:     &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ModelName returns the embedding model identifier.
func (c *OllamaClient) ModelName() string { return c.model }

// Dimensions returns the expected vector dimensionality.
func (c *OllamaClient) Dimensions() int { return c.dimensions }

type embeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embeddingResponse struct {
	Embedding []float64 `json:"embedding"`
}

// Embed generates an embedding for text.
func (c *OllamaClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	body, err := json.Marshal(embeddingRequest{Model: c.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("encoding embedding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+apiPathEmbeddings, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("embedding API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embedding API returned HTTP %d", resp.StatusCode)
	}

	var er embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		return nil, fmt.Errorf("parsing embedding response: %w", err)
	}

	if len(er.Embedding) != c.dimensions {
		return nil, fmt.Errorf("embedding dimension mismatch: got %d, want %d",
			len(er.Embedding), c.dimensions)
	}

	vector := make([]float32, len(er.Embedding))
	for i, v := range er.Embedding {
		vector[i] = float32(v)
	}
	return vector, nil
}

var _ Embedder = (*OllamaClient)(nil)
