/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"chainguard.dev/casecrew/web"
	"github.com/chainguard-dev/clog"
	"github.com/chainguard-dev/terraform-infra-common/pkg/httpmetrics"
	"github.com/chainguard-dev/terraform-infra-common/pkg/profiler"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownGrace = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web form and artifact viewer",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(ctx, nil)
	if err != nil {
		return err
	}
	if cfg.MetricsEnabled {
		go httpmetrics.ScrapeDiskUsage(ctx)
		defer httpmetrics.SetupTracer(ctx)()
	}
	profiler.SetupProfiler()

	svc, cleanup, err := newService(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	s, err := web.New(svc, web.WithRunTimeout(cfg.RunTimeout), web.WithMetrics(cfg.MetricsEnabled))
	if err != nil {
		return fmt.Errorf("creating web server: %w", err)
	}
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           httpmetrics.Handler("casecrew", s.Handler()),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		clog.FromContext(ctx).With("addr", srv.Addr).Info("Serving")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownGrace)
		defer cancel()
		clog.FromContext(ctx).Info("Shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
