// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package picture

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/text/unicode/norm"

	companion "github.com/gogpu/gg-companion"
	"github.com/gogpu/gg-companion/canvas"
)

// Recorder is a canvas.Canvas that records every call into a Picture.
// It plays the role of a picture recorder and its recording canvas at once.
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	bounds    companion.Size
	ops       []Op
	resources *ResourcePool
	zIndex    int
	finished  bool
}

// Ensure Recorder implements the canvas interfaces.
var (
	_ canvas.Canvas      = (*Recorder)(nil)
	_ canvas.Snapshotter = (*Recorder)(nil)
)

// BeginRecording starts a recording with the given cull bounds.
func BeginRecording(width, height float64) *Recorder {
	return &Recorder{
		bounds:    companion.Size{Width: width, Height: height},
		ops:       make([]Op, 0, 64),
		resources: NewResourcePool(),
	}
}

// Record is a convenience that records the drawing done by fn.
func Record(width, height float64, fn func(c canvas.Canvas)) *Picture {
	rec := BeginRecording(width, height)
	fn(rec)
	return rec.EndRecording()
}

// Bounds returns the cull bounds of the recording.
func (r *Recorder) Bounds() companion.Size {
	return r.bounds
}

// Len returns the number of operations recorded so far.
func (r *Recorder) Len() int {
	return len(r.ops)
}

// Snapshot returns a picture of everything recorded so far. The recorder
// stays usable; later calls do not affect the snapshot.
func (r *Recorder) Snapshot() canvas.Snapshot {
	return newPicture(r.bounds, r.ops[:len(r.ops):len(r.ops)], r.resources.freeze())
}

// EndRecording finalises the recording and returns it as an immutable
// Picture. The recorder drops any calls made afterwards.
func (r *Recorder) EndRecording() *Picture {
	p := newPicture(r.bounds, r.ops, r.resources)
	r.ops = nil
	r.resources = NewResourcePool()
	r.finished = true
	return p
}

// Close discards the recording. Close is idempotent.
func (r *Recorder) Close() error {
	r.ops = nil
	if r.resources != nil {
		r.resources.release()
	}
	r.finished = true
	return nil
}

func (r *Recorder) add(op Op) {
	if r.finished {
		return
	}
	r.ops = append(r.ops, op)
}

// Save implements canvas.Canvas.
func (r *Recorder) Save() { r.add(SaveOp{}) }

// Restore implements canvas.Canvas.
func (r *Recorder) Restore() { r.add(RestoreOp{}) }

// Translate implements canvas.Canvas.
func (r *Recorder) Translate(x, y float64) { r.add(TranslateOp{X: x, Y: y}) }

// Scale implements canvas.Canvas.
func (r *Recorder) Scale(sx, sy float64) { r.add(ScaleOp{X: sx, Y: sy}) }

// Rotate implements canvas.Canvas.
func (r *Recorder) Rotate(angle float64) { r.add(RotateOp{Angle: angle}) }

// Transform implements canvas.Canvas.
func (r *Recorder) Transform(m gg.Matrix) { r.add(TransformOp{Matrix: m}) }

// ClipRect implements canvas.Canvas.
func (r *Recorder) ClipRect(x, y, w, h float64) {
	r.add(ClipRectOp{X: x, Y: y, W: w, H: h})
}

// ClipPath implements canvas.Canvas.
func (r *Recorder) ClipPath(path *gg.Path, rule gg.FillRule) {
	if r.finished || path == nil {
		return
	}
	r.add(ClipPathOp{Path: r.resources.AddPath(path), Rule: rule})
}

// FillPath implements canvas.Canvas.
func (r *Recorder) FillPath(path *gg.Path, color gg.RGBA, rule gg.FillRule) {
	if r.finished || path == nil {
		return
	}
	r.add(FillPathOp{Path: r.resources.AddPath(path), Color: color, Rule: rule})
}

// StrokePath implements canvas.Canvas.
func (r *Recorder) StrokePath(path *gg.Path, color gg.RGBA, stroke gg.Stroke) {
	if r.finished || path == nil {
		return
	}
	r.add(StrokePathOp{Path: r.resources.AddPath(path), Color: color, Stroke: stroke.Clone()})
}

// FillRect implements canvas.Canvas.
func (r *Recorder) FillRect(x, y, w, h float64, color gg.RGBA) {
	r.add(FillRectOp{X: x, Y: y, W: w, H: h, Color: color})
}

// DrawImage implements canvas.Canvas.
func (r *Recorder) DrawImage(img image.Image, x, y, w, h float64) {
	if r.finished || img == nil {
		return
	}
	r.add(DrawImageOp{Image: r.resources.AddImage(img), X: x, Y: y, W: w, H: h})
}

// DrawText implements canvas.Canvas. The text is stored in NFC form.
func (r *Recorder) DrawText(s string, x, y float64, face text.Face, color gg.RGBA) {
	if r.finished || face == nil || s == "" {
		return
	}
	r.add(DrawTextOp{
		Text:  norm.NFC.String(s),
		X:     x,
		Y:     y,
		Face:  r.resources.AddFace(face),
		Color: color,
	})
}

// DrawHyperlink implements canvas.Canvas.
func (r *Recorder) DrawHyperlink(url string, w, h float64) {
	r.add(HyperlinkOp{URL: url, W: w, H: h})
}

// DrawSectionLink implements canvas.Canvas.
func (r *Recorder) DrawSectionLink(name string, w, h float64) {
	r.add(SectionLinkOp{Name: name, W: w, H: h})
}

// DrawSection implements canvas.Canvas.
func (r *Recorder) DrawSection(name string) {
	r.add(SectionOp{Name: name})
}

// SetZIndex implements canvas.Canvas.
func (r *Recorder) SetZIndex(index int) {
	r.zIndex = index
	r.add(SetZIndexOp{Index: index})
}

// ZIndex implements canvas.Canvas.
func (r *Recorder) ZIndex() int {
	return r.zIndex
}
