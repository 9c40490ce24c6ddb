// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package capture

import (
	"bytes"
	"fmt"
	"io"

	"github.com/gogpu/gg"

	companion "github.com/gogpu/gg-companion"
	"github.com/gogpu/gg-companion/picture"
	"github.com/gogpu/gg-companion/raster"
)

// JPEGQuality is the encoder quality used for rendered pages.
const JPEGQuality = 90

// PageSnapshot is one finished page: its recorded drawing and logical size.
// A PageSnapshot is immutable and safe for concurrent rendering.
type PageSnapshot struct {
	Picture *picture.Picture
	Size    companion.Size
}

// PixelSize returns the raster dimensions of the page at zoom.
func (p *PageSnapshot) PixelSize(zoom int) (width, height int, err error) {
	return p.Size.PixelSize(zoom)
}

// RenderImage rasterises the page at the given zoom level (scale 2^zoom)
// on a white background and returns it encoded as JPEG.
//
// The result is floor(Width*2^zoom) by floor(Height*2^zoom) pixels. An
// error wrapping companion.ErrAllocation is returned when that buffer
// cannot be allocated; no retry is attempted.
func (p *PageSnapshot) RenderImage(zoom int) ([]byte, error) {
	var buf bytes.Buffer
	if err := p.RenderImageTo(&buf, zoom); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderImageTo is like RenderImage but streams the JPEG to w.
func (p *PageSnapshot) RenderImageTo(w io.Writer, zoom int) error {
	rc, err := p.rasterize(zoom)
	if err != nil {
		return err
	}
	defer rc.Close()

	if err := rc.EncodeJPEG(w, JPEGQuality); err != nil {
		return fmt.Errorf("capture: encode page: %w", err)
	}
	return nil
}

func (p *PageSnapshot) rasterize(zoom int) (*raster.Canvas, error) {
	width, height, err := p.Size.PixelSize(zoom)
	if err != nil {
		return nil, err
	}
	rc, err := raster.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", companion.ErrAllocation, err)
	}

	scale := companion.Scale(zoom)
	rc.Scale(scale, scale)
	// Clear also covers the edge pixels the page rectangle only partly hits.
	rc.Clear(gg.White)
	rc.FillRect(0, 0, p.Size.Width, p.Size.Height, gg.White)

	if err := p.Picture.Playback(rc); err != nil {
		_ = rc.Close()
		return nil, fmt.Errorf("capture: replay page: %w", err)
	}

	companion.Logger().Debug("capture: page rendered",
		"size", p.Size, "zoom", zoom, "width", width, "height", height)
	return rc, nil
}
