// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package companion

import "errors"

// ErrAllocation is returned when a raster buffer of the requested size
// cannot be allocated: the dimensions are below one pixel, overflow, or
// exceed the configured pixel budget.
var ErrAllocation = errors.New("companion: cannot allocate raster buffer")
