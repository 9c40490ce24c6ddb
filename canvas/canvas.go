// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package canvas defines the drawing-surface contract used by document
// content and the redirectable Proxy that forwards it to a swappable target.
//
// Collaborators that issue draw commands depend only on [Canvas]. Concrete
// canvases either record the commands (picture.Recorder) or rasterise them
// (raster.Canvas). The capture controller owns a single [Proxy] and points
// it at a fresh target for every page.
package canvas

import (
	"errors"
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// Common errors returned by Proxy.
var (
	// ErrNoTarget is returned when a snapshot is requested from a proxy
	// that has no target assigned.
	ErrNoTarget = errors.New("canvas: proxy has no target")

	// ErrNotSnapshotter is returned when the proxy's target cannot produce
	// snapshots.
	ErrNotSnapshotter = errors.New("canvas: target does not support snapshots")
)

// Canvas is the drawing-surface capability set.
//
// Coordinates are in logical units. Transform calls compose with the
// current matrix; Save and Restore bracket transform and clip changes.
// Canvas implementations are not safe for concurrent use.
type Canvas interface {
	// State

	Save()
	Restore()

	// Transform

	Translate(x, y float64)
	Scale(sx, sy float64)
	Rotate(angle float64)
	Transform(m gg.Matrix)

	// Clipping, intersected with the current clip

	ClipRect(x, y, w, h float64)
	ClipPath(path *gg.Path, rule gg.FillRule)

	// Drawing

	FillPath(path *gg.Path, color gg.RGBA, rule gg.FillRule)
	StrokePath(path *gg.Path, color gg.RGBA, stroke gg.Stroke)
	FillRect(x, y, w, h float64, color gg.RGBA)

	// DrawImage draws img scaled into the rectangle (x, y, w, h).
	DrawImage(img image.Image, x, y, w, h float64)

	// DrawText draws s with its baseline origin at (x, y).
	DrawText(s string, x, y float64, face text.Face, color gg.RGBA)

	// Semantic annotations. Raster canvases ignore them.

	DrawHyperlink(url string, w, h float64)
	DrawSectionLink(name string, w, h float64)
	DrawSection(name string)

	// Layering

	SetZIndex(index int)
	ZIndex() int
}

// Snapshot is a read-only capture of drawing, suitable for being drawn onto
// another canvas. Close releases it.
type Snapshot interface {
	DrawOn(c Canvas) error
	Close() error
}

// Snapshotter is implemented by canvases that can capture what has been
// drawn on them so far.
type Snapshotter interface {
	Snapshot() Snapshot
}
