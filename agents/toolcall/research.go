/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package toolcall

import (
	"context"

	"chainguard.dev/casecrew/agents/agenttrace"
	"chainguard.dev/casecrew/agents/toolcall/callbacks"
	"chainguard.dev/casecrew/agents/toolcall/params"
	"github.com/chainguard-dev/clog"
)

// Tool names offered by the research provider.
const (
	WebSearchTool     = "web_search"
	ScrapeWebsiteTool = "scrape_website"
)

const (
	defaultSearchResults = 8
	maxSearchResults     = 20
)

// ResearchTools wraps a base callbacks type and adds web research callbacks.
type ResearchTools[T any] struct {
	base T
	callbacks.ResearchCallbacks
}

// NewResearchTools wraps base with cb.
func NewResearchTools[T any](base T, cb callbacks.ResearchCallbacks) ResearchTools[T] {
	return ResearchTools[T]{base: base, ResearchCallbacks: cb}
}

type researchToolsProvider[T any] struct {
	base ToolProvider[T]
}

var _ ToolProvider[ResearchTools[EmptyTools]] = researchToolsProvider[EmptyTools]{}

// NewResearchToolsProvider adds web_search and scrape_website on top of
// base. Each tool is offered only when its callback is set.
func NewResearchToolsProvider[T any](base ToolProvider[T]) ToolProvider[ResearchTools[T]] {
	return researchToolsProvider[T]{base: base}
}

type searchArgs struct {
	Reasoning  string `json:"reasoning" jsonschema:"required" jsonschema_description:"Why this search helps the task."`
	Query      string `json:"query" jsonschema:"required" jsonschema_description:"The web search query."`
	NumResults int    `json:"num_results,omitempty" jsonschema_description:"How many results to return (1 to 20, default 8)."`
}

type scrapeArgs struct {
	Reasoning string `json:"reasoning" jsonschema:"required" jsonschema_description:"Why this page is worth reading."`
	URL       string `json:"url" jsonschema:"required" jsonschema_description:"Absolute http or https URL of the page to read."`
}

func (p researchToolsProvider[T]) Tools(cb ResearchTools[T]) map[string]Tool {
	tools := p.base.Tools(cb.base)

	if cb.HasSearch() {
		tools[WebSearchTool] = Tool{
			Def: Definition{
				Name:        WebSearchTool,
				Description: "Search the web. Returns ranked results with title, link and snippet. Use it to find data, trends, examples and references.",
				Parameters:  ParametersOf[searchArgs](),
			},
			Handler: searchHandler(cb.Search),
		}
	}
	if cb.HasScrape() {
		tools[ScrapeWebsiteTool] = Tool{
			Def: Definition{
				Name:        ScrapeWebsiteTool,
				Description: "Fetch a web page and return its readable text. Long pages are truncated.",
				Parameters:  ParametersOf[scrapeArgs](),
			},
			Handler: scrapeHandler(cb.Scrape),
		}
	}
	return tools
}

func searchHandler(search func(context.Context, string, int) ([]callbacks.SearchResult, error)) func(context.Context, ToolCall, *agenttrace.Trace) map[string]any {
	return func(ctx context.Context, call ToolCall, trace *agenttrace.Trace) map[string]any {
		query, errResp := Param[string](call, trace, "query")
		if errResp != nil {
			return errResp
		}
		limit, errResp := OptionalParam(call, "num_results", defaultSearchResults)
		if errResp != nil {
			return errResp
		}
		limit = min(max(limit, 1), maxSearchResults)

		tc := trace.StartToolCall(call.ID, call.Name, call.Args)
		results, err := search(ctx, query, limit)
		tc.Complete(results, err)
		if err != nil {
			clog.FromContext(ctx).With("query", query).With("error", err.Error()).Warn("Web search failed")
			return params.ErrorWithContext(err, map[string]any{"query": query})
		}
		return map[string]any{
			"query":   query,
			"results": results,
		}
	}
}

func scrapeHandler(scrape func(context.Context, string) (callbacks.Page, error)) func(context.Context, ToolCall, *agenttrace.Trace) map[string]any {
	return func(ctx context.Context, call ToolCall, trace *agenttrace.Trace) map[string]any {
		url, errResp := Param[string](call, trace, "url")
		if errResp != nil {
			return errResp
		}

		tc := trace.StartToolCall(call.ID, call.Name, call.Args)
		page, err := scrape(ctx, url)
		tc.Complete(map[string]any{"title": page.Title, "chars": len(page.Text)}, err)
		if err != nil {
			clog.FromContext(ctx).With("url", url).With("error", err.Error()).Warn("Scrape failed")
			return params.ErrorWithContext(err, map[string]any{"url": url})
		}
		return map[string]any{
			"url":       page.URL,
			"title":     page.Title,
			"text":      page.Text,
			"truncated": page.Truncated,
		}
	}
}
