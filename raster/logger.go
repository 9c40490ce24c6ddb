// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"log/slog"

	companion "github.com/gogpu/gg-companion"
)

func logger() *slog.Logger { return companion.Logger() }
