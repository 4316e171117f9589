/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package toolcall defines tools once, independent of the model provider that
calls them.

A Tool is a Definition (name, description, parameters) plus a handler that
takes a decoded ToolCall and returns the JSON-able response for the model.
The claudetool, googletool and openaitool packages translate definitions and
calls to and from each SDK; executors use Dispatch to route a call to its
handler.

Tool sets are assembled from stacked providers:

	provider := toolcall.NewResearchToolsProvider(toolcall.NewEmptyToolsProvider())
	tools := provider.Tools(toolcall.NewResearchTools(toolcall.EmptyTools{}, callbacks.ResearchCallbacks{
		Search: searcher.Search,
		Scrape: scraper.Scrape,
	}))

Tools whose callbacks are nil are left out, so a stage is never offered a
capability the process was not configured with.
*/
package toolcall
