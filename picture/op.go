// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package picture

import "github.com/gogpu/gg"

// OpType identifies a recorded operation.
type OpType uint8

const (
	// State
	OpSave OpType = iota
	OpRestore

	// Transform
	OpTranslate
	OpScale
	OpRotate
	OpTransform

	// Clipping
	OpClipRect
	OpClipPath

	// Drawing
	OpFillPath
	OpStrokePath
	OpFillRect
	OpDrawImage
	OpDrawText

	// Annotations
	OpHyperlink
	OpSectionLink
	OpSection

	// Layering
	OpSetZIndex
)

var opTypeNames = [...]string{
	OpSave:        "Save",
	OpRestore:     "Restore",
	OpTranslate:   "Translate",
	OpScale:       "Scale",
	OpRotate:      "Rotate",
	OpTransform:   "Transform",
	OpClipRect:    "ClipRect",
	OpClipPath:    "ClipPath",
	OpFillPath:    "FillPath",
	OpStrokePath:  "StrokePath",
	OpFillRect:    "FillRect",
	OpDrawImage:   "DrawImage",
	OpDrawText:    "DrawText",
	OpHyperlink:   "Hyperlink",
	OpSectionLink: "SectionLink",
	OpSection:     "Section",
	OpSetZIndex:   "SetZIndex",
}

// String returns the name of the operation type.
func (t OpType) String() string {
	if int(t) < len(opTypeNames) {
		return opTypeNames[t]
	}
	return "Unknown"
}

// Op is a single recorded operation.
type Op interface {
	Type() OpType
}

// PathRef references a path in a ResourcePool.
type PathRef uint32

// ImageRef references an image in a ResourcePool.
type ImageRef uint32

// FaceRef references a font face in a ResourcePool.
type FaceRef uint32

// SaveOp pushes the current transform and clip.
type SaveOp struct{}

// RestoreOp pops the state saved by the matching SaveOp.
type RestoreOp struct{}

// TranslateOp composes a translation with the current transform.
type TranslateOp struct{ X, Y float64 }

// ScaleOp composes a scale with the current transform.
type ScaleOp struct{ X, Y float64 }

// RotateOp composes a rotation (radians) with the current transform.
type RotateOp struct{ Angle float64 }

// TransformOp composes an arbitrary matrix with the current transform.
type TransformOp struct{ Matrix gg.Matrix }

// ClipRectOp intersects the clip with a rectangle.
type ClipRectOp struct{ X, Y, W, H float64 }

// ClipPathOp intersects the clip with a path.
type ClipPathOp struct {
	Path PathRef
	Rule gg.FillRule
}

// FillPathOp fills a path with a solid color.
type FillPathOp struct {
	Path  PathRef
	Color gg.RGBA
	Rule  gg.FillRule
}

// StrokePathOp strokes a path with a solid color.
type StrokePathOp struct {
	Path   PathRef
	Color  gg.RGBA
	Stroke gg.Stroke
}

// FillRectOp fills an axis-aligned rectangle in local coordinates.
type FillRectOp struct {
	X, Y, W, H float64
	Color      gg.RGBA
}

// DrawImageOp draws an image scaled into a rectangle.
type DrawImageOp struct {
	Image      ImageRef
	X, Y, W, H float64
}

// DrawTextOp draws a run of text at a baseline origin.
type DrawTextOp struct {
	Text  string
	X, Y  float64
	Face  FaceRef
	Color gg.RGBA
}

// HyperlinkOp marks a clickable area linking to a URL.
type HyperlinkOp struct {
	URL  string
	W, H float64
}

// SectionLinkOp marks a clickable area linking to a named section.
type SectionLinkOp struct {
	Name string
	W, H float64
}

// SectionOp marks the location of a named section.
type SectionOp struct{ Name string }

// SetZIndexOp changes the layering index.
type SetZIndexOp struct{ Index int }

// Type implementations.

func (SaveOp) Type() OpType        { return OpSave }
func (RestoreOp) Type() OpType     { return OpRestore }
func (TranslateOp) Type() OpType   { return OpTranslate }
func (ScaleOp) Type() OpType       { return OpScale }
func (RotateOp) Type() OpType      { return OpRotate }
func (TransformOp) Type() OpType   { return OpTransform }
func (ClipRectOp) Type() OpType    { return OpClipRect }
func (ClipPathOp) Type() OpType    { return OpClipPath }
func (FillPathOp) Type() OpType    { return OpFillPath }
func (StrokePathOp) Type() OpType  { return OpStrokePath }
func (FillRectOp) Type() OpType    { return OpFillRect }
func (DrawImageOp) Type() OpType   { return OpDrawImage }
func (DrawTextOp) Type() OpType    { return OpDrawText }
func (HyperlinkOp) Type() OpType   { return OpHyperlink }
func (SectionLinkOp) Type() OpType { return OpSectionLink }
func (SectionOp) Type() OpType     { return OpSection }
func (SetZIndexOp) Type() OpType   { return OpSetZIndex }
