// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package capture turns a paginated drawing session into a collection of
// page snapshots.
//
// A layout engine drives a DocumentCanvas through its lifecycle and draws
// each page through DrawingCanvas:
//
//	dc := capture.NewDocumentCanvas()
//	defer dc.Close()
//
//	dc.BeginDocument()
//	dc.BeginPage(companion.Size{Width: 595, Height: 842})
//	dc.DrawingCanvas().FillRect(72, 72, 200, 40, gg.Black)
//	dc.EndPage()
//	dc.EndDocument()
//
//	jpg, err := dc.Content().Pages[0].RenderImage(1) // 1190x1684 pixels
//
// Every finished page is frozen into an immutable picture.Picture paired
// with its logical size. Snapshots can be rasterised at any zoom level, any
// number of times, from any goroutine.
//
// # Lifecycle
//
// The controller moves between three states:
//
//	Idle --BeginDocument--> DocumentOpen --BeginPage--> PageOpen
//	                             ^                         |
//	                             +--------EndPage----------+
//
// BeginDocument is accepted in every state and discards whatever was
// captured before. Calling BeginPage while a page is open, or EndPage on a
// degenerate page, is a programming error and panics with a *LifecycleError.
//
// A DocumentCanvas owns native raster resources only transiently, but the
// pictures it holds should be released with Close. If Close is never called
// a warning is logged when the canvas is garbage collected.
package capture
