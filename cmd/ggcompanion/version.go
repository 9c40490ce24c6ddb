// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"github.com/spf13/cobra"

	companion "github.com/gogpu/gg-companion"
)

var version = companion.Version

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("ggcompanion version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
