// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package canvas

import (
	"image"
	"io"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	companion "github.com/gogpu/gg-companion"
)

// Proxy is a Canvas that forwards every call to a replaceable target.
// With no target, drawing calls are dropped.
//
// Proxy is NOT safe for concurrent use.
type Proxy struct {
	target Canvas
	zIndex int
	closed bool
}

// Ensure Proxy implements Canvas.
var _ Canvas = (*Proxy)(nil)

// NewProxy creates a Proxy with no target.
func NewProxy() *Proxy {
	return &Proxy{}
}

// SetTarget replaces the current target. The previous target is neither
// flushed nor validated; the proxy forgets it entirely.
func (p *Proxy) SetTarget(c Canvas) {
	p.target = c
	companion.Logger().Debug("canvas: proxy retargeted", "target", c != nil)
}

// Target returns the current target, or nil.
func (p *Proxy) Target() Canvas {
	return p.target
}

// Snapshot returns a read-only capture of everything drawn on the current
// target since it was assigned.
func (p *Proxy) Snapshot() (Snapshot, error) {
	if p.target == nil {
		return nil, ErrNoTarget
	}
	s, ok := p.target.(Snapshotter)
	if !ok {
		return nil, ErrNotSnapshotter
	}
	return s.Snapshot(), nil
}

// Close releases the current target if it implements io.Closer and drops
// it. Close is idempotent.
func (p *Proxy) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true

	var err error
	if c, ok := p.target.(io.Closer); ok {
		err = c.Close()
	}
	p.target = nil
	return err
}

// Save implements Canvas.
func (p *Proxy) Save() {
	if p.target != nil {
		p.target.Save()
	}
}

// Restore implements Canvas.
func (p *Proxy) Restore() {
	if p.target != nil {
		p.target.Restore()
	}
}

// Translate implements Canvas.
func (p *Proxy) Translate(x, y float64) {
	if p.target != nil {
		p.target.Translate(x, y)
	}
}

// Scale implements Canvas.
func (p *Proxy) Scale(sx, sy float64) {
	if p.target != nil {
		p.target.Scale(sx, sy)
	}
}

// Rotate implements Canvas.
func (p *Proxy) Rotate(angle float64) {
	if p.target != nil {
		p.target.Rotate(angle)
	}
}

// Transform implements Canvas.
func (p *Proxy) Transform(m gg.Matrix) {
	if p.target != nil {
		p.target.Transform(m)
	}
}

// ClipRect implements Canvas.
func (p *Proxy) ClipRect(x, y, w, h float64) {
	if p.target != nil {
		p.target.ClipRect(x, y, w, h)
	}
}

// ClipPath implements Canvas.
func (p *Proxy) ClipPath(path *gg.Path, rule gg.FillRule) {
	if p.target != nil {
		p.target.ClipPath(path, rule)
	}
}

// FillPath implements Canvas.
func (p *Proxy) FillPath(path *gg.Path, color gg.RGBA, rule gg.FillRule) {
	if p.target != nil {
		p.target.FillPath(path, color, rule)
	}
}

// StrokePath implements Canvas.
func (p *Proxy) StrokePath(path *gg.Path, color gg.RGBA, stroke gg.Stroke) {
	if p.target != nil {
		p.target.StrokePath(path, color, stroke)
	}
}

// FillRect implements Canvas.
func (p *Proxy) FillRect(x, y, w, h float64, color gg.RGBA) {
	if p.target != nil {
		p.target.FillRect(x, y, w, h, color)
	}
}

// DrawImage implements Canvas.
func (p *Proxy) DrawImage(img image.Image, x, y, w, h float64) {
	if p.target != nil {
		p.target.DrawImage(img, x, y, w, h)
	}
}

// DrawText implements Canvas.
func (p *Proxy) DrawText(s string, x, y float64, face text.Face, color gg.RGBA) {
	if p.target != nil {
		p.target.DrawText(s, x, y, face, color)
	}
}

// DrawHyperlink implements Canvas.
func (p *Proxy) DrawHyperlink(url string, w, h float64) {
	if p.target != nil {
		p.target.DrawHyperlink(url, w, h)
	}
}

// DrawSectionLink implements Canvas.
func (p *Proxy) DrawSectionLink(name string, w, h float64) {
	if p.target != nil {
		p.target.DrawSectionLink(name, w, h)
	}
}

// DrawSection implements Canvas.
func (p *Proxy) DrawSection(name string) {
	if p.target != nil {
		p.target.DrawSection(name)
	}
}

// SetZIndex sets the layering index and forwards it to the target.
func (p *Proxy) SetZIndex(index int) {
	p.zIndex = index
	if p.target != nil {
		p.target.SetZIndex(index)
	}
}

// ZIndex returns the layering index last set on the proxy.
func (p *Proxy) ZIndex() int {
	return p.zIndex
}
