// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	companion "github.com/gogpu/gg-companion"
	"github.com/gogpu/gg-companion/capture"
	"github.com/gogpu/gg-companion/hierarchy"
)

var inspectFormat string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the page sizes and structure of the sample document",
	Args:  cobra.NoArgs,
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().StringVarP(&inspectFormat, "format", "f", "text", "output format: text, json or yaml")
	rootCmd.AddCommand(inspectCmd)
}

// report is the machine-readable inspect output.
type report struct {
	ID        uuid.UUID          `json:"id" yaml:"id"`
	Pages     []pageReport       `json:"pages" yaml:"pages"`
	Hierarchy *hierarchy.Element `json:"hierarchy,omitempty" yaml:"hierarchy,omitempty"`
}

type pageReport struct {
	Number int            `json:"number" yaml:"number"`
	Size   companion.Size `json:"size" yaml:"size"`
	Ops    int            `json:"ops" yaml:"ops"`
}

func newReport(doc *capture.DocumentSnapshot) report {
	r := report{ID: doc.ID, Hierarchy: doc.Hierarchy}
	for i, p := range doc.Pages {
		r.Pages = append(r.Pages, pageReport{Number: i + 1, Size: p.Size, Ops: p.Picture.Len()})
	}
	return r
}

func runInspect(cmd *cobra.Command, _ []string) error {
	s, err := captureDemo()
	if err != nil {
		return err
	}
	defer s.Close()

	r := newReport(s.Content())
	w := cmd.OutOrStdout()
	switch strings.ToLower(inspectFormat) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		writeText(w, r)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", inspectFormat)
	}
}

func writeText(w io.Writer, r report) {
	heading(w, "Document %s", r.ID)
	for _, p := range r.Pages {
		fmt.Fprintf(w, "  page %d  %-9s  %d ops\n", p.Number, p.Size, p.Ops)
	}
	if r.Hierarchy == nil {
		return
	}
	heading(w, "Structure (%d elements)", r.Hierarchy.Count())
	r.Hierarchy.Walk(func(el *hierarchy.Element, depth int) bool {
		line := strings.Repeat("  ", depth+1) + el.ElementType
		if el.Hint != "" {
			line += " (" + el.Hint + ")"
		}
		fmt.Fprintln(w, line)
		return true
	})
}
