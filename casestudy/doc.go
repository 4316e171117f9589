/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package casestudy configures the four-stage case study pipeline.
//
// Research gathers data about the case study, frame turns the research into
// a problem statement, review refines that statement, and solve answers the
// reviewed statement. Each stage is an LLM agent with a persona; research,
// review and solve may search the web and read pages while they work.
//
// The reviewed problem statement and the solution are persisted as
// reviewed_problem_statement.txt and solution.txt.
//
//	svc, err := casestudy.NewService(casestudy.Config{
//		Model:       "gpt-4o-mini-2024-07-18",
//		Credentials: metaagent.Credentials{OpenAIKey: key},
//		Research:    callbacks.ResearchCallbacks{Search: serp.Search, Scrape: scraper.Scrape},
//	})
//	if err != nil {
//		return err
//	}
//	run, err := svc.Run(ctx, pipeline.RootInputs{CaseStudyDetails: details, Context: context}, "")
package casestudy
