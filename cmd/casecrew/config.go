/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"chainguard.dev/casecrew/agents/metaagent"
	"chainguard.dev/casecrew/agents/toolcall/callbacks"
	"chainguard.dev/casecrew/casestudy"
	"chainguard.dev/casecrew/pipeline/artifact"
	"chainguard.dev/casecrew/pipeline/artifact/gcsstore"
	"chainguard.dev/casecrew/pipeline/artifact/sqlstore"
	"chainguard.dev/casecrew/research/scrape"
	"chainguard.dev/casecrew/research/serper"
	"cloud.google.com/go/compute/metadata"
	"cloud.google.com/go/storage"
	"github.com/chainguard-dev/clog"
	"github.com/chainguard-dev/terraform-infra-common/pkg/httpmetrics"
	"github.com/sethvargo/go-envconfig"
)

// Store backends selectable with STORE.
const (
	storeFile   = "file"
	storeSQLite = "sqlite"
	storeGCS    = "gcs"
)

type config struct {
	Port           int  `env:"PORT,default=8080"`
	MetricsEnabled bool `env:"METRICS_ENABLED,default=true"`

	Model        string `env:"MODEL,default=gpt-4o-mini-2024-07-18"`
	OpenAIKey    string `env:"OPENAI_API_KEY"`
	AnthropicKey string `env:"ANTHROPIC_API_KEY"`
	GeminiKey    string `env:"GEMINI_API_KEY"`
	SerperKey    string `env:"SERPER_API_KEY"`

	// Vertex AI serves claude-* and gemini-* models without an API key.
	// VERTEX_DETECT fills project and region from the GCE metadata server.
	VertexProject string `env:"GOOGLE_CLOUD_PROJECT"`
	VertexRegion  string `env:"GOOGLE_CLOUD_REGION"`
	VertexDetect  bool   `env:"VERTEX_DETECT,default=false"`

	Store      string `env:"STORE,default=file"`
	OutputDir  string `env:"OUTPUT_DIR,default=./output"`
	SQLitePath string `env:"SQLITE_PATH,default=casecrew.db"`
	GCSBucket  string `env:"GCS_BUCKET"`
	GCSPrefix  string `env:"GCS_PREFIX"`

	RunTimeout  time.Duration `env:"RUN_TIMEOUT,default=30m"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT,default=60s"`

	PipelineFile string `env:"PIPELINE_FILE"`
}

// loadConfig reads the environment through lookuper (the process
// environment when nil) and applies the --pipeline flag.
func loadConfig(ctx context.Context, lookuper envconfig.Lookuper) (config, error) {
	var cfg config
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return config{}, fmt.Errorf("processing environment: %w", err)
	}
	if rootFlags.pipeline != "" {
		cfg.PipelineFile = rootFlags.pipeline
	}
	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	if err := cfg.detectVertex(ctx); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) validate() error {
	switch c.Store {
	case storeFile, storeSQLite:
	case storeGCS:
		if c.GCSBucket == "" {
			return errors.New("GCS_BUCKET is required when STORE=gcs")
		}
	default:
		return fmt.Errorf("unknown STORE %q (want %s, %s or %s)", c.Store, storeFile, storeSQLite, storeGCS)
	}
	if c.RunTimeout <= 0 {
		return errors.New("RUN_TIMEOUT must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c config) credentials() metaagent.Credentials {
	return metaagent.Credentials{
		OpenAIKey:    c.OpenAIKey,
		AnthropicKey: c.AnthropicKey,
		GeminiKey:    c.GeminiKey,

		VertexProject: c.VertexProject,
		VertexRegion:  c.VertexRegion,
	}
}

// detectVertex fills the Vertex AI project and region from the metadata
// server when VERTEX_DETECT is set and they were not given.
func (c *config) detectVertex(ctx context.Context) error {
	if !c.VertexDetect {
		return nil
	}
	log := clog.FromContext(ctx)
	if c.VertexProject == "" {
		projectID, err := metadata.ProjectIDWithContext(ctx)
		if err != nil {
			return fmt.Errorf("detecting project ID: %w", err)
		}
		c.VertexProject = projectID
		log.With("project", projectID).Info("Detected Google Cloud project")
	}
	if c.VertexRegion == "" {
		zone, err := metadata.ZoneWithContext(ctx)
		if err != nil {
			return fmt.Errorf("detecting zone: %w", err)
		}
		i := strings.LastIndex(zone, "-")
		if i <= 0 {
			return fmt.Errorf("unexpected zone %q", zone)
		}
		c.VertexRegion = zone[:i]
		log.With("region", c.VertexRegion).Info("Detected Google Cloud region")
	}
	return nil
}

// research builds the web research callbacks. Search is left unset without
// a Serper key, which makes the search capability unavailable.
func (c config) research() (callbacks.ResearchCallbacks, error) {
	scraper, err := scrape.New(scrape.WithTimeout(c.HTTPTimeout))
	if err != nil {
		return callbacks.ResearchCallbacks{}, fmt.Errorf("creating scraper: %w", err)
	}
	cb := callbacks.ResearchCallbacks{Scrape: scraper.Scrape}

	if c.SerperKey != "" {
		search, err := serper.New(c.SerperKey, serper.WithHTTPClient(&http.Client{
			Timeout:   c.HTTPTimeout,
			Transport: httpmetrics.Transport,
		}))
		if err != nil {
			return callbacks.ResearchCallbacks{}, fmt.Errorf("creating search client: %w", err)
		}
		cb.Search = search.Search
	}
	return cb, nil
}

// storeOptions wires the artifact store selected by STORE. The returned
// func releases the backend.
func (c config) storeOptions(ctx context.Context) ([]casestudy.Option, func() error, error) {
	noop := func() error { return nil }
	switch c.Store {
	case storeSQLite:
		db, err := sqlstore.Open(ctx, c.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return []casestudy.Option{
			casestudy.WithStoreFactory(func(_ context.Context, runID string) (artifact.Store, error) {
				return db.Run(runID), nil
			}),
			casestudy.WithJournal(db),
		}, db.Close, nil

	case storeGCS:
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, noop, fmt.Errorf("creating storage client: %w", err)
		}
		return []casestudy.Option{
			casestudy.WithStoreFactory(func(_ context.Context, runID string) (artifact.Store, error) {
				return gcsstore.New(client, c.GCSBucket, c.GCSPrefix, runID)
			}),
		}, client.Close, nil

	default:
		return nil, noop, nil
	}
}

// newService builds the case study service from the configuration. The
// returned func must be called once the service is no longer used.
func newService(ctx context.Context, c config) (*casestudy.Service, func(), error) {
	research, err := c.research()
	if err != nil {
		return nil, nil, err
	}

	opts := []casestudy.Option{casestudy.WithOutputDir(c.OutputDir)}
	if c.PipelineFile != "" {
		specs, err := casestudy.LoadSpecs(c.PipelineFile)
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, casestudy.WithSpecs(specs))
	}

	storeOpts, closeStore, err := c.storeOptions(ctx)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := closeStore(); err != nil {
			clog.FromContext(ctx).With("error", err.Error()).Warn("Failed to close artifact store")
		}
	}

	svc, err := casestudy.NewService(casestudy.Config{
		Model:       c.Model,
		Credentials: c.credentials(),
		Research:    research,
	}, append(opts, storeOpts...)...)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	clog.FromContext(ctx).With("store", c.Store).
		With("model", c.Model).
		With("credentials", svc.Config().Credentials.Any()).
		With("search", research.HasSearch()).
		Info("Case study service ready")
	return svc, cleanup, nil
}
