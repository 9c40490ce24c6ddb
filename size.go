// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package companion

import (
	"fmt"
	"math"
	"sync/atomic"
)

// sizeEpsilon is the tolerance below which a page dimension counts as zero.
const sizeEpsilon = 1e-6

// DefaultMaxPixels is the default pixel budget for a single raster buffer
// (256 Mpx, 1 GiB of RGBA).
const DefaultMaxPixels = 1 << 28

var maxPixels atomic.Int64

func init() {
	maxPixels.Store(DefaultMaxPixels)
}

// SetMaxPixels sets the largest pixel count PixelSize accepts.
// Values <= 0 restore DefaultMaxPixels.
func SetMaxPixels(n int64) {
	if n <= 0 {
		n = DefaultMaxPixels
	}
	maxPixels.Store(n)
}

// MaxPixels returns the current pixel budget.
func MaxPixels() int64 {
	return maxPixels.Load()
}

// Size is a logical page size in document units.
type Size struct {
	Width  float64 `json:"width" yaml:"width" toml:"width"`
	Height float64 `json:"height" yaml:"height" toml:"height"`
}

// Zero is the degenerate size.
var Zero = Size{}

// IsCloseToZero reports whether either dimension is zero, negative or
// within a small tolerance of zero. Degenerate sizes cannot be closed as
// pages.
func (s Size) IsCloseToZero() bool {
	return s.Width < sizeEpsilon || s.Height < sizeEpsilon
}

// String returns the size as "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Scale returns the linear scale factor for a zoom level: 2^zoom.
func Scale(zoom int) float64 {
	return math.Ldexp(1, zoom)
}

// PixelSize returns the raster dimensions of s at the given zoom level:
// each dimension multiplied by 2^zoom and truncated toward zero.
//
// It returns an error wrapping ErrAllocation if a dimension is below one
// pixel, does not fit in an int, or the pixel count exceeds MaxPixels.
func (s Size) PixelSize(zoom int) (width, height int, err error) {
	scale := Scale(zoom)
	w := math.Trunc(s.Width * scale)
	h := math.Trunc(s.Height * scale)

	if math.IsNaN(w) || math.IsNaN(h) || w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("%w: %s at zoom %d is %gx%g pixels", ErrAllocation, s, zoom, w, h)
	}
	if w > math.MaxInt32 || h > math.MaxInt32 || w*h > float64(MaxPixels()) {
		return 0, 0, fmt.Errorf("%w: %s at zoom %d needs %gx%g pixels (limit %d)",
			ErrAllocation, s, zoom, w, h, MaxPixels())
	}
	return int(w), int(h), nil
}
