// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package picture

import (
	"errors"
	"sync"

	companion "github.com/gogpu/gg-companion"
	"github.com/gogpu/gg-companion/canvas"
)

// ErrReleased is returned when a picture is used after its last reference
// was closed.
var ErrReleased = errors.New("picture: picture has been released")

// Picture is an immutable recording of drawing operations.
type Picture struct {
	bounds    companion.Size
	ops       []Op
	resources *ResourcePool

	mu       sync.RWMutex
	refs     int
	released bool
}

// Ensure Picture implements canvas.Snapshot.
var _ canvas.Snapshot = (*Picture)(nil)

func newPicture(bounds companion.Size, ops []Op, resources *ResourcePool) *Picture {
	return &Picture{
		bounds:    bounds,
		ops:       ops,
		resources: resources,
		refs:      1,
	}
}

// Bounds returns the cull bounds the picture was recorded with.
func (p *Picture) Bounds() companion.Size {
	return p.bounds
}

// Len returns the number of recorded operations.
func (p *Picture) Len() int {
	return len(p.ops)
}

// Ops returns the recorded operations. The slice must not be modified.
func (p *Picture) Ops() []Op {
	return p.ops
}

// Resources returns the resource pool referenced by the operations.
func (p *Picture) Resources() *ResourcePool {
	return p.resources
}

// Retain adds a reference and returns p. Each Retain must be matched by a
// Close.
func (p *Picture) Retain() *Picture {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.released {
		p.refs++
	}
	return p
}

// Close drops a reference. The resources are released when the last
// reference is dropped; further Close calls are no-ops.
func (p *Picture) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.released {
		return nil
	}
	p.refs--
	if p.refs > 0 {
		return nil
	}
	p.released = true
	p.ops = nil
	p.resources.release()
	return nil
}

// Released reports whether the picture's resources have been released.
func (p *Picture) Released() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.released
}

// DrawOn implements canvas.Snapshot by playing the picture back onto c.
func (p *Picture) DrawOn(c canvas.Canvas) error {
	return p.Playback(c)
}

// Playback replays every operation onto c, in order and unchanged.
// Playback only reads the picture and may run concurrently with other
// playbacks of the same picture.
func (p *Picture) Playback(c canvas.Canvas) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.released {
		return ErrReleased
	}

	res := p.resources
	for _, op := range p.ops {
		switch o := op.(type) {
		case SaveOp:
			c.Save()
		case RestoreOp:
			c.Restore()
		case TranslateOp:
			c.Translate(o.X, o.Y)
		case ScaleOp:
			c.Scale(o.X, o.Y)
		case RotateOp:
			c.Rotate(o.Angle)
		case TransformOp:
			c.Transform(o.Matrix)
		case ClipRectOp:
			c.ClipRect(o.X, o.Y, o.W, o.H)
		case ClipPathOp:
			c.ClipPath(res.Path(o.Path), o.Rule)
		case FillPathOp:
			c.FillPath(res.Path(o.Path), o.Color, o.Rule)
		case StrokePathOp:
			c.StrokePath(res.Path(o.Path), o.Color, o.Stroke)
		case FillRectOp:
			c.FillRect(o.X, o.Y, o.W, o.H, o.Color)
		case DrawImageOp:
			c.DrawImage(res.Image(o.Image), o.X, o.Y, o.W, o.H)
		case DrawTextOp:
			c.DrawText(o.Text, o.X, o.Y, res.Face(o.Face), o.Color)
		case HyperlinkOp:
			c.DrawHyperlink(o.URL, o.W, o.H)
		case SectionLinkOp:
			c.DrawSectionLink(o.Name, o.W, o.H)
		case SectionOp:
			c.DrawSection(o.Name)
		case SetZIndexOp:
			c.SetZIndex(o.Index)
		}
	}
	return nil
}
