// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build gpu

package main

import (
	"github.com/gogpu/gg"
	_ "github.com/gogpu/gg/gpu" // GPU accelerator and coverage filler
)

func init() {
	shutdownHooks = append(shutdownHooks, func() {
		if a := gg.Accelerator(); a != nil {
			a.Close()
		}
	})
}
