// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command ggcompanion captures a sample document page by page and hands it
// to the companion application, a browser, or JPEG files.
//
// Usage:
//
//	ggcompanion render --zoom 1 --out pages
//	ggcompanion serve --listen 127.0.0.1:12501
//	ggcompanion push --url http://localhost:12500
//	ggcompanion inspect --format yaml
//
// Build with -tags gpu to enable GPU-accelerated rasterisation.
package main

import "os"

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
