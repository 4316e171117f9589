/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package callbacks holds the callback types tools call into, without any AI
SDK dependencies. The research package implements them:

	cb := callbacks.ResearchCallbacks{
		Search: serperClient.Search,
		Scrape: scraper.Scrape,
	}
*/
package callbacks
