/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package web serves the case study form, runs the pipeline on submit and
// shows or offers for download whatever artifacts a run produced.
//
//	@title			casecrew API
//	@version		1.0
//	@description	Runs the research, frame, review, solve pipeline over a case study.
//	@BasePath		/
package web

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"chainguard.dev/casecrew/casestudy"
	_ "chainguard.dev/casecrew/web/docs" // registers the swagger spec
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Server is the HTTP front end of a casestudy.Service.
type Server struct {
	svc        *casestudy.Service
	runTimeout time.Duration
	metrics    bool

	// mu serializes pipeline runs: one run per process at a time.
	mu sync.Mutex
}

// Option configures a Server.
type Option func(*Server) error

// WithRunTimeout bounds each pipeline run. Defaults to 30 minutes.
func WithRunTimeout(d time.Duration) Option {
	return func(s *Server) error {
		if d <= 0 {
			return fmt.Errorf("run timeout must be positive, got %v", d)
		}
		s.runTimeout = d
		return nil
	}
}

// WithMetrics serves Prometheus metrics on /metrics.
func WithMetrics(enabled bool) Option {
	return func(s *Server) error {
		s.metrics = enabled
		return nil
	}
}

// New creates a Server for svc.
func New(svc *casestudy.Service, opts ...Option) (*Server, error) {
	if svc == nil {
		return nil, errors.New("service cannot be nil")
	}
	s := &Server{
		svc:        svc,
		runTimeout: 30 * time.Minute,
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}
	return s, nil
}

// Handler returns the routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleForm)
	mux.HandleFunc("POST /runs", s.handleCreateRun)
	mux.HandleFunc("GET /runs/{id}", s.handleShowRun)
	mux.HandleFunc("GET /runs/{id}/artifacts/{stage}", s.handleArtifact)
	mux.HandleFunc("GET /runs/{id}/artifacts/{stage}/download", s.handleDownload)
	mux.HandleFunc("GET /api/v1/runs/{id}/artifacts", s.handleListArtifacts)
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	if s.metrics {
		mux.Handle("GET /metrics", promhttp.Handler())
	}
	return mux
}
