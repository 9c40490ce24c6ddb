// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gogpu/gg-companion/transport"
)

var pushURL string

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Send the sample document to the companion application",
	Long: `Push waits for the companion application, publishes the document structure
and answers page snapshot requests until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runPush,
}

func init() {
	pushCmd.Flags().StringVarP(&pushURL, "url", "u", "", "companion application URL (default from config)")
	rootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, _ []string) error {
	url := cfg.CompanionURL
	if pushURL != "" {
		url = pushURL
	}

	s, err := captureDemo()
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := transport.NewClient(url)
	if err := waitForApp(ctx, cmd, client, time.Duration(cfg.PollInterval)); err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	success(cmd.OutOrStdout(), "connected to %s, serving %d pages", client.BaseURL(), s.Content().Len())
	return client.Serve(ctx, s.Content(), time.Duration(cfg.PollInterval))
}

// waitForApp pings until the application answers or ctx ends.
func waitForApp(ctx context.Context, cmd *cobra.Command, client *transport.Client, interval time.Duration) error {
	if client.Ping(ctx) == nil {
		return nil
	}

	sp := newSpinner(cmd.ErrOrStderr(), "waiting for the companion application at "+client.BaseURL())
	sp.Start()
	defer sp.Stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if client.Ping(ctx) == nil {
				return nil
			}
		}
	}
}
