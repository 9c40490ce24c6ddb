// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/gogpu/gg-companion/preview"
)

var (
	serveListen      string
	serveRenderLimit float64
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the sample document over HTTP",
	Long: `Serve captures the sample document and exposes it on a local HTTP server:

  GET /v1/document                    page sizes and hierarchy
  GET /v1/pages/{index}/image?zoom=Z  page as JPEG

The server stops on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "listen address (default from config)")
	serveCmd.Flags().Float64Var(&serveRenderLimit, "render-limit", 0, "max page renders per second, 0 for unlimited")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	addr := cfg.Listen
	if serveListen != "" {
		addr = serveListen
	}

	s, err := captureDemo()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []preview.Option{preview.WithAddr(addr), preview.WithDefaultZoom(cfg.Zoom)}
	if serveRenderLimit > 0 {
		opts = append(opts, preview.WithRenderLimit(rate.Limit(serveRenderLimit), max(1, int(serveRenderLimit))))
	}
	srv := preview.NewServer(s, opts...)
	info(cmd.OutOrStdout(), "serving %d pages on http://%s", s.Content().Len(), addr)
	return srv.ListenAndServe(ctx)
}
