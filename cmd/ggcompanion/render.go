// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	renderZoom int
	renderOut  string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render every page of the sample document to JPEG files",
	Long: `Render captures the sample document and writes one JPEG per page
(page-001.jpg, page-002.jpg, ...) at the requested zoom level.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntVarP(&renderZoom, "zoom", "z", 0, "zoom level, scale 2^zoom (default from config)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "output directory (default from config)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	zoom := cfg.Zoom
	if cmd.Flags().Changed("zoom") {
		zoom = renderZoom
	}
	out := cfg.OutputDir
	if renderOut != "" {
		out = renderOut
	}

	s, err := captureDemo()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := os.MkdirAll(out, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	pages := s.Content().Pages
	bar := newProgressBar(cmd.ErrOrStderr(), len(pages), "rendering")
	for i, page := range pages {
		data, err := page.RenderImage(zoom)
		if err != nil {
			return fmt.Errorf("render page %d: %w", i+1, err)
		}
		name := filepath.Join(out, fmt.Sprintf("page-%03d.jpg", i+1))
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	success(cmd.OutOrStdout(), "wrote %d pages to %s (zoom %d)", len(pages), out, zoom)
	return nil
}
