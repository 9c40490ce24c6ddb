// Package companion captures a paginated gg document as replayable page
// pictures for an external inspection tool (the companion application).
//
// # Overview
//
// A document is drawn page by page through a redirectable drawing surface.
// When a page ends, everything drawn on it is frozen into an immutable
// picture paired with the page's logical size. Any page can later be
// rasterised as a JPEG at an integer zoom level without running the
// application's drawing code again.
//
// # Quick Start
//
//	import (
//	    companion "github.com/gogpu/gg-companion"
//	    "github.com/gogpu/gg-companion/capture"
//	)
//
//	dc := capture.NewDocumentCanvas()
//	defer dc.Close()
//
//	dc.BeginDocument()
//	dc.BeginPage(companion.Size{Width: 595, Height: 842})
//	dc.DrawingCanvas().FillRect(50, 50, 200, 100, gg.Red)
//	dc.EndPage()
//	dc.EndDocument()
//
//	jpegBytes, err := dc.Content().Pages[0].RenderImage(1) // 2x
//
// # Architecture
//
// The module is organized into:
//   - companion: Size, zoom arithmetic, logging configuration
//   - canvas: the drawing-surface contract and the redirectable Proxy
//   - picture: Recorder and immutable Picture (recorded drawing)
//   - raster: gg.Context backed canvas and JPEG encoding
//   - capture: PageSnapshot, DocumentSnapshot and the DocumentCanvas controller
//   - hierarchy: document structure tree passed through to the companion
//   - transport, preview: delivery to the companion application
//
// # Zoom
//
// Zoom level z maps to the linear scale factor 2^z: zoom 0 is 1x, zoom 1 is
// 2x, zoom -1 is 0.5x. Raster dimensions are the logical size times the
// scale, truncated toward zero.
//
// # Coordinate System
//
// Same as gg:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - One logical unit is one pixel at zoom 0
package companion

// Version is the current version of the module.
const Version = "0.3.0"
