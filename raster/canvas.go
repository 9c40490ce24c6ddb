// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster provides a canvas.Canvas that rasterises onto a gg.Context.
//
// It is the playback target used when a recorded page is turned into
// pixels: every canvas call maps onto the equivalent gg operation with the
// context's current matrix applied, so a scale set before playback magnifies
// the whole picture uniformly.
//
// # Example
//
//	rc, err := raster.New(1190, 1684)
//	if err != nil {
//	    return err
//	}
//	defer rc.Close()
//
//	rc.Scale(2, 2)
//	_ = pic.Playback(rc)
//	_ = rc.EncodeJPEG(w, 90)
//
// Semantic annotations (hyperlinks, sections) have no pixels and are
// ignored.
package raster

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/gg-companion/canvas"
)

// Common errors returned by Canvas operations.
var (
	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("raster: invalid dimensions")

	// ErrClosed is returned when output is requested from a closed canvas.
	ErrClosed = errors.New("raster: canvas is closed")
)

// Canvas rasterises canvas calls onto a gg.Context.
//
// Canvas is NOT safe for concurrent use.
type Canvas struct {
	ctx    *gg.Context
	width  int
	height int
	zIndex int
	closed bool
}

// Ensure Canvas implements canvas.Canvas and io.Closer.
var (
	_ canvas.Canvas = (*Canvas)(nil)
	_ io.Closer     = (*Canvas)(nil)
)

// New allocates a width×height pixel canvas, initially transparent.
func New(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	return &Canvas{
		ctx:    gg.NewContext(width, height),
		width:  width,
		height: height,
	}, nil
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// Context returns the underlying gg context, or nil once closed.
func (c *Canvas) Context() *gg.Context {
	if c.closed {
		return nil
	}
	return c.ctx
}

// Clear fills every pixel with col, ignoring transform and clip.
func (c *Canvas) Clear(col gg.RGBA) {
	c.ctx.ClearWithColor(col)
}

// Image returns a copy of the rendered pixels.
func (c *Canvas) Image() (image.Image, error) {
	if c.closed {
		return nil, ErrClosed
	}
	if err := c.ctx.FlushGPU(); err != nil {
		return nil, err
	}
	return c.ctx.Image(), nil
}

// EncodeJPEG writes the rendered pixels as a JPEG with the given quality
// (1-100).
func (c *Canvas) EncodeJPEG(w io.Writer, quality int) error {
	if c.closed {
		return ErrClosed
	}
	if err := c.ctx.FlushGPU(); err != nil {
		return err
	}
	return c.ctx.EncodeJPEG(w, quality)
}

// EncodePNG writes the rendered pixels as a PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	if c.closed {
		return ErrClosed
	}
	if err := c.ctx.FlushGPU(); err != nil {
		return err
	}
	return c.ctx.EncodePNG(w)
}

// Close releases the gg context. Close is idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.ctx.Close()
}

// Save implements canvas.Canvas.
func (c *Canvas) Save() { c.ctx.Push() }

// Restore implements canvas.Canvas.
func (c *Canvas) Restore() { c.ctx.Pop() }

// Translate implements canvas.Canvas.
func (c *Canvas) Translate(x, y float64) { c.ctx.Translate(x, y) }

// Scale implements canvas.Canvas.
func (c *Canvas) Scale(sx, sy float64) { c.ctx.Scale(sx, sy) }

// Rotate implements canvas.Canvas.
func (c *Canvas) Rotate(angle float64) { c.ctx.Rotate(angle) }

// Transform implements canvas.Canvas.
func (c *Canvas) Transform(m gg.Matrix) { c.ctx.Transform(m) }

// ClipRect implements canvas.Canvas.
func (c *Canvas) ClipRect(x, y, w, h float64) { c.ctx.ClipRect(x, y, w, h) }

// ClipPath implements canvas.Canvas.
func (c *Canvas) ClipPath(path *gg.Path, rule gg.FillRule) {
	if path == nil {
		return
	}
	c.setPath(path)
	c.ctx.SetFillRule(rule)
	c.ctx.Clip()
}

// FillPath implements canvas.Canvas.
func (c *Canvas) FillPath(path *gg.Path, color gg.RGBA, rule gg.FillRule) {
	if path == nil {
		return
	}
	c.setPath(path)
	c.ctx.SetFillBrush(gg.Solid(color))
	c.ctx.SetFillRule(rule)
	c.fill()
}

// StrokePath implements canvas.Canvas.
func (c *Canvas) StrokePath(path *gg.Path, color gg.RGBA, stroke gg.Stroke) {
	if path == nil {
		return
	}
	c.setPath(path)
	c.ctx.SetStrokeBrush(gg.Solid(color))
	c.ctx.SetStroke(stroke)
	if err := c.ctx.Stroke(); err != nil {
		logger().Warn("raster: stroke failed", "err", err)
	}
}

// FillRect implements canvas.Canvas.
func (c *Canvas) FillRect(x, y, w, h float64, color gg.RGBA) {
	c.ctx.ClearPath()
	c.ctx.DrawRectangle(x, y, w, h)
	c.ctx.SetFillBrush(gg.Solid(color))
	c.ctx.SetFillRule(gg.FillRuleNonZero)
	c.fill()
}

// DrawImage implements canvas.Canvas.
func (c *Canvas) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil {
		return
	}
	c.ctx.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:             x,
		Y:             y,
		DstWidth:      w,
		DstHeight:     h,
		Interpolation: gg.InterpBilinear,
		Opacity:       1.0,
		BlendMode:     gg.BlendNormal,
	})
}

// DrawText implements canvas.Canvas. Position and glyph size follow the
// context's current matrix.
func (c *Canvas) DrawText(s string, x, y float64, face text.Face, color gg.RGBA) {
	if face == nil || s == "" {
		return
	}
	c.ctx.SetFont(face)
	c.ctx.SetFillBrush(gg.Solid(color))
	c.ctx.DrawString(s, x, y)
}

// DrawHyperlink implements canvas.Canvas; it draws nothing.
func (c *Canvas) DrawHyperlink(string, float64, float64) {}

// DrawSectionLink implements canvas.Canvas; it draws nothing.
func (c *Canvas) DrawSectionLink(string, float64, float64) {}

// DrawSection implements canvas.Canvas; it draws nothing.
func (c *Canvas) DrawSection(string) {}

// SetZIndex implements canvas.Canvas.
func (c *Canvas) SetZIndex(index int) { c.zIndex = index }

// ZIndex implements canvas.Canvas.
func (c *Canvas) ZIndex() int { return c.zIndex }

func (c *Canvas) fill() {
	if err := c.ctx.Fill(); err != nil {
		logger().Warn("raster: fill failed", "err", err)
	}
}

// setPath replaces the context path with path, transformed by the current
// matrix.
func (c *Canvas) setPath(path *gg.Path) {
	c.ctx.ClearPath()
	for _, elem := range path.Elements() {
		switch e := elem.(type) {
		case gg.MoveTo:
			c.ctx.MoveTo(e.Point.X, e.Point.Y)
		case gg.LineTo:
			c.ctx.LineTo(e.Point.X, e.Point.Y)
		case gg.QuadTo:
			c.ctx.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case gg.CubicTo:
			c.ctx.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case gg.Close:
			c.ctx.ClosePath()
		}
	}
}
