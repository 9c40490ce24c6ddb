// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	companion "github.com/gogpu/gg-companion"
	"github.com/gogpu/gg-companion/internal/config"
)

var (
	cfgFile string
	verbose bool
	noColor bool

	// cfg is loaded before every command runs.
	cfg = config.Default()

	// shutdownHooks run after every command, in order.
	shutdownHooks []func()
)

var rootCmd = &cobra.Command{
	Use:   "ggcompanion",
	Short: "Capture paginated gg drawings for the companion application",
	Long: `ggcompanion records a multi-page document drawn with gg, keeps every page
as a replayable picture and renders pages as JPEG at any zoom level (scale 2^zoom).

Pages can be written to disk, served to a browser, or pushed to the companion
application.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		color.NoColor = color.NoColor || noColor
		if verbose {
			companion.SetLogger(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug})))
		}

		path := cfgFile
		if path == "" {
			p, err := config.DefaultPath()
			if err != nil {
				return fmt.Errorf("locate config: %w", err)
			}
			path = p
		}
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
		cfg.Apply()
		return nil
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		for _, hook := range shutdownHooks {
			hook()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ~/.ggcompanion/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
