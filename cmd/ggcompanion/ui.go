// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

func success(w io.Writer, format string, args ...any) {
	color.New(color.FgGreen).Fprintf(w, "✓ %s\n", fmt.Sprintf(format, args...))
}

func info(w io.Writer, format string, args ...any) {
	color.New(color.FgCyan).Fprintf(w, "ℹ %s\n", fmt.Sprintf(format, args...))
}

func heading(w io.Writer, format string, args ...any) {
	color.New(color.FgCyan, color.Bold).Fprintf(w, format+"\n", args...)
}

// newProgressBar returns a bar counting pages, drawn on w.
func newProgressBar(w io.Writer, total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("pages"),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
}

// newSpinner returns a stopped spinner drawn on w.
func newSpinner(w io.Writer, message string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message
	return s
}
