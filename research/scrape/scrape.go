/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package scrape fetches web pages and reduces them to readable text.
package scrape

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chainguard.dev/casecrew/agents/toolcall/callbacks"
	"github.com/chainguard-dev/clog"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// DefaultMaxChars bounds the text returned for one page.
	DefaultMaxChars = 20000

	maxBodyBytes = 5 << 20
	userAgent    = "casecrew/1.0 (+https://chainguard.dev)"
)

// DefaultTimeout bounds one fetch, redirects and body included.
const DefaultTimeout = 60 * time.Second

// Scraper fetches pages over HTTP. By default it refuses hosts that resolve
// to loopback, private or link-local addresses.
type Scraper struct {
	httpClient   *http.Client
	timeout      time.Duration
	allowPrivate bool
	maxChars     int
}

// Option configures a Scraper.
type Option func(*Scraper) error

// WithTimeout bounds each fetch. Defaults to DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Scraper) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", d)
		}
		s.timeout = d
		return nil
	}
}

// WithAllowPrivate lets the scraper fetch loopback, private and link-local
// hosts.
func WithAllowPrivate() Option {
	return func(s *Scraper) error {
		s.allowPrivate = true
		return nil
	}
}

// WithMaxChars caps the returned text at n characters.
func WithMaxChars(n int) Option {
	return func(s *Scraper) error {
		if n <= 0 {
			return fmt.Errorf("max chars must be positive, got %d", n)
		}
		s.maxChars = n
		return nil
	}
}

// New creates a Scraper.
func New(opts ...Option) (*Scraper, error) {
	s := &Scraper{
		timeout:  DefaultTimeout,
		maxChars: DefaultMaxChars,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	s.httpClient = newClient(s.timeout, s.allowPrivate)
	return s, nil
}

// Scrape fetches rawURL and returns its title and visible text.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (callbacks.Page, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return callbacks.Page{}, fmt.Errorf("parsing url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return callbacks.Page{}, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return callbacks.Page{}, fmt.Errorf("url %q has no host", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return callbacks.Page{}, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,text/plain;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return callbacks.Page{}, fmt.Errorf("fetching %s: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return callbacks.Page{}, fmt.Errorf("fetching %s: %s", u, resp.Status)
	}

	body := io.LimitReader(resp.Body, maxBodyBytes)
	page := callbacks.Page{URL: u.String()}

	mediaType, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	switch {
	case mediaType == "text/plain":
		raw, err := io.ReadAll(body)
		if err != nil {
			return callbacks.Page{}, fmt.Errorf("reading %s: %w", u, err)
		}
		page.Text = collapse(string(raw))
	case mediaType == "" || mediaType == "text/html" || mediaType == "application/xhtml+xml":
		doc, err := html.Parse(body)
		if err != nil {
			return callbacks.Page{}, fmt.Errorf("parsing %s: %w", u, err)
		}
		page.Title, page.Text = Extract(doc)
	default:
		return callbacks.Page{}, fmt.Errorf("unsupported content type %q", mediaType)
	}

	page.Text, page.Truncated = truncate(page.Text, s.maxChars)

	clog.FromContext(ctx).With("url", page.URL).
		With("chars", len(page.Text)).
		With("truncated", page.Truncated).
		Debug("Scraped page")
	return page, nil
}

// skipped elements never contribute visible text.
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Nav:      true,
	atom.Noscript: true,
	atom.Svg:      true,
	atom.Iframe:   true,
	atom.Template: true,
}

// Extract returns the document title and its visible body text with
// whitespace collapsed.
func Extract(doc *html.Node) (title, text string) {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if n.DataAtom == atom.Title {
				if title == "" && n.FirstChild != nil {
					title = collapse(n.FirstChild.Data)
				}
				return
			}
			if skipped[n.DataAtom] {
				return
			}
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return title, collapse(b.String())
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts s to at most n runes.
func truncate(s string, n int) (string, bool) {
	if len(s) <= n {
		return s, false
	}
	r := []rune(s)
	if len(r) <= n {
		return s, false
	}
	return string(r[:n]), true
}
