// Package search talks to the news search backend that supplies
// evidence snippets.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/afriquesports/factsheet/internal/model"
)

// Result is one search hit.
type Result struct {
	URL         string    `json:"url"`
	Publisher   string    `json:"publisher"`
	Snippet     string    `json:"snippet"`
	PublishedAt time.Time `json:"publishedAt"`
}

// Searcher is the evidence search backend. Available lets callers
// degrade gracefully instead of treating a dead backend as fatal.
type Searcher interface {
	Search(ctx context.Context, query string, limit int) ([]Result, error)
	Available(ctx context.Context) bool
}

// Client is an HTTP Searcher. It POSTs queries to /search and probes
// /health for availability.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a search client for the given base URL.
func NewClient(cfg model.SearchConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

type searchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type searchResponse struct {
	Results []Result `json:"results"`
}

// Search runs one query and returns at most limit results.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	payload, err := json.Marshal(searchRequest{Query: query, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var decoded searchResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	results := decoded.Results
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// Available probes the backend health endpoint.
func (c *Client) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
