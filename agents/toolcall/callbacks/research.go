/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package callbacks

import "context"

// SearchResult is one organic web search hit.
type SearchResult struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet,omitempty"`
	Position int    `json:"position,omitempty"`
}

// Page is the readable text of a fetched web page.
type Page struct {
	URL       string `json:"url"`
	Title     string `json:"title,omitempty"`
	Text      string `json:"text"`
	Truncated bool   `json:"truncated,omitempty"`
}

// ResearchCallbacks backs the web research tools. A nil func means the
// capability is not configured and its tool is not offered.
type ResearchCallbacks struct {
	Search func(ctx context.Context, query string, limit int) ([]SearchResult, error)
	Scrape func(ctx context.Context, url string) (Page, error)
}

// HasSearch reports whether web search is configured.
func (cb ResearchCallbacks) HasSearch() bool { return cb.Search != nil }

// HasScrape reports whether page fetching is configured.
func (cb ResearchCallbacks) HasScrape() bool { return cb.Scrape != nil }
