/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package scrape_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"chainguard.dev/casecrew/agents/toolcall/callbacks"
	"chainguard.dev/casecrew/research/scrape"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const article = `<!doctype html>
<html>
<head><title>  Left-handed
  market </title><style>body { color: red }</style></head>
<body>
  <nav><a href="/">Home</a> | <a href="/about">About</a></nav>
  <h1>Lefty boxes</h1>
  <script>var tracking = "ignore me";</script>
  <p>About   ten percent
     of people are <b>left-handed</b>.</p>
  <noscript>Enable JS</noscript>
</body>
</html>`

func TestExtract(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(article))
	require.NoError(t, err)

	title, text := scrape.Extract(doc)
	if title != "Left-handed market" {
		t.Errorf("title = %q", title)
	}
	if want := "Lefty boxes About ten percent of people are left-handed ."; text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
}

func serve(t *testing.T, contentType, body string, status int) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestScrape(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		maxChars    int
		want        callbacks.Page
	}{{
		name:        "html",
		contentType: "text/html; charset=utf-8",
		body:        article,
		maxChars:    1000,
		want: callbacks.Page{
			Title: "Left-handed market",
			Text:  "Lefty boxes About ten percent of people are left-handed .",
		},
	}, {
		name:        "truncated",
		contentType: "text/html",
		body:        article,
		maxChars:    11,
		want:        callbacks.Page{Title: "Left-handed market", Text: "Lefty boxes", Truncated: true},
	}, {
		name:        "plain text",
		contentType: "text/plain",
		body:        "one\n\n two\tthree",
		maxChars:    1000,
		want:        callbacks.Page{Text: "one two three"},
	}, {
		name:        "multibyte truncation",
		contentType: "text/plain",
		body:        "ééééé",
		maxChars:    3,
		want:        callbacks.Page{Text: "ééé", Truncated: true},
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			u := serve(t, tt.contentType, tt.body, http.StatusOK)
			s, err := scrape.New(scrape.WithMaxChars(tt.maxChars), scrape.WithAllowPrivate())
			require.NoError(t, err)

			got, err := s.Scrape(context.Background(), u)
			require.NoError(t, err)
			tt.want.URL = u
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Scrape() (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScrapeErrors(t *testing.T) {
	s, err := scrape.New(scrape.WithAllowPrivate())
	require.NoError(t, err)

	tests := []struct {
		name string
		url  string
	}{
		{name: "not found", url: serve(t, "text/html", "gone", http.StatusNotFound)},
		{name: "binary", url: serve(t, "application/pdf", "%PDF", http.StatusOK)},
		{name: "ftp", url: "ftp://example.com/file"},
		{name: "no host", url: "http://"},
		{name: "garbage", url: "://"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Scrape(context.Background(), tt.url); err == nil {
				t.Errorf("Scrape(%q) succeeded, want error", tt.url)
			}
		})
	}

	if _, err := scrape.New(scrape.WithMaxChars(0)); err == nil {
		t.Error("New(WithMaxChars(0)) succeeded")
	}
	if _, err := scrape.New(scrape.WithTimeout(0)); err == nil {
		t.Error("New(WithTimeout(0)) succeeded")
	}
}

func TestScrapeRefusesInternalHosts(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("internal-secret-token"))
	}))
	t.Cleanup(srv.Close)

	s, err := scrape.New()
	require.NoError(t, err)

	for _, u := range []string{
		srv.URL + "/metrics",
		strings.Replace(srv.URL, "127.0.0.1", "localhost", 1) + "/metrics",
		"http://0.0.0.0:1/",
		"http://169.254.169.254/computeMetadata/v1/",
		"http://10.0.0.1:1/",
	} {
		got, err := s.Scrape(context.Background(), u)
		require.ErrorIs(t, err, scrape.ErrForbiddenAddress, "Scrape(%q)", u)
		require.Empty(t, got.Text)
	}
	require.Zero(t, hits.Load(), "internal server was reached")
}
