/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package serper searches the web through the Serper Google search API.
package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"chainguard.dev/casecrew/agents/toolcall/callbacks"
	"github.com/chainguard-dev/clog"
)

// DefaultEndpoint is the Serper search endpoint.
const DefaultEndpoint = "https://google.serper.dev/search"

// ErrNoAPIKey is returned by New when the key is empty.
var ErrNoAPIKey = errors.New("serper API key is required")

// Client calls the Serper API.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client) error

// WithEndpoint overrides DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) error {
		if endpoint == "" {
			return errors.New("endpoint cannot be empty")
		}
		c.endpoint = endpoint
		return nil
	}
}

// WithHTTPClient sets the HTTP client. Its Timeout bounds each search.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client cannot be nil")
		}
		c.httpClient = hc
		return nil
	}
}

// New creates a Client authenticating with apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}
	c := &Client{
		apiKey:     apiKey,
		endpoint:   DefaultEndpoint,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return c, nil
}

type request struct {
	Query string `json:"q"`
	Num   int    `json:"num,omitempty"`
}

type response struct {
	Organic []struct {
		Title    string `json:"title"`
		Link     string `json:"link"`
		Snippet  string `json:"snippet"`
		Position int    `json:"position"`
	} `json:"organic"`
}

// Search returns at most limit organic results for query, in rank order.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]callbacks.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("query cannot be empty")
	}
	body, err := json.Marshal(request{Query: query, Num: limit})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("serper returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}

	results := make([]callbacks.SearchResult, 0, len(out.Organic))
	for _, r := range out.Organic {
		if limit > 0 && len(results) == limit {
			break
		}
		results = append(results, callbacks.SearchResult{
			Title:    r.Title,
			Link:     r.Link,
			Snippet:  r.Snippet,
			Position: r.Position,
		})
	}

	clog.FromContext(ctx).With("query", query).
		With("results", len(results)).
		With("duration", time.Since(start)).
		Debug("Serper search complete")
	return results, nil
}
