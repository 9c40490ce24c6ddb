// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package demo draws a small sample document through a capture controller.
package demo

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	companion "github.com/gogpu/gg-companion"
	"github.com/gogpu/gg-companion/canvas"
	"github.com/gogpu/gg-companion/capture"
	"github.com/gogpu/gg-companion/hierarchy"
)

// Page sizes of the sample document, in points.
var (
	A4     = companion.Size{Width: 595, Height: 842}
	Square = companion.Size{Width: 300, Height: 300}
	Banner = companion.Size{Width: 400, Height: 200}
)

// Pages lists the sample page sizes in order.
func Pages() []companion.Size {
	return []companion.Size{A4, Square, Banner}
}

// LoadFont parses the Go Regular font. The caller closes the source.
func LoadFont() (*text.FontSource, error) {
	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("demo: load font: %w", err)
	}
	return src, nil
}

// Draw captures the sample document on dc: a cover page, a page of rotated
// squares and a banner with an image. It sets a matching hierarchy.
func Draw(dc *capture.DocumentCanvas, src *text.FontSource) {
	c := dc.DrawingCanvas()

	dc.BeginDocument()

	dc.BeginPage(A4)
	drawCover(c, src)
	dc.EndPage()

	dc.BeginPage(Square)
	drawSquares(c)
	dc.EndPage()

	dc.BeginPage(Banner)
	drawBanner(c, src)
	dc.EndPage()

	dc.SetHierarchy(structure())
	dc.EndDocument()
}

func drawCover(c canvas.Canvas, src *text.FontSource) {
	// background bands
	steps := 20
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps)
		y := A4.Height * 0.25 * t
		c.FillRect(0, y, A4.Width, A4.Height*0.25/float64(steps)+1, gg.RGB(0.1+t*0.4, 0.2+t*0.3, 0.4+t*0.2))
	}

	c.DrawText("gg companion", 48, 120, src.Face(40), gg.White)
	c.DrawSection("cover")

	body := src.Face(12)
	lines := []string{
		"Every page of this document was recorded into a picture",
		"and can be rendered again at any zoom level.",
		"Café, naïve, Ångström: text is stored normalised.",
	}
	for i, line := range lines {
		c.DrawText(line, 48, 260+float64(i)*18, body, gg.Black)
	}

	border := gg.NewPath()
	border.RoundedRectangle(36, 230, A4.Width-72, 80, 8)
	c.StrokePath(border, gg.RGB(0.2, 0.4, 0.8), gg.DefaultStroke().WithWidth(2))

	// a curve clipped to a box
	c.Save()
	c.ClipRect(48, 360, 300, 120)
	curve := gg.NewPath()
	curve.MoveTo(0, 420)
	curve.CubicTo(100, 300, 200, 540, 400, 420)
	c.StrokePath(curve, gg.RGB(1, 0.5, 0), gg.DefaultStroke().WithWidth(6))
	c.Restore()

	c.Translate(48, 760)
	c.DrawText("See the banner page", 0, 0, body, gg.RGB(0.2, 0.4, 0.8))
	c.DrawSectionLink("banner", 120, 14)
	c.Translate(-48, -760)
}

func drawSquares(c canvas.Canvas) {
	cx, cy := Square.Width/2, Square.Height/2
	for i := 0; i < 8; i++ {
		c.Save()
		c.Translate(cx, cy)
		c.Rotate(float64(i) * math.Pi / 4)
		c.FillRect(-30, -30, 60, 60, gg.HSL(float64(i)*45, 0.8, 0.6))
		c.Restore()
	}

	star := gg.NewPath()
	const points = 5
	for i := 0; i < points*2; i++ {
		angle := float64(i) * math.Pi / points
		r := 40.0
		if i%2 == 1 {
			r = 20
		}
		x := cx + r*math.Cos(angle-math.Pi/2)
		y := cy + r*math.Sin(angle-math.Pi/2)
		if i == 0 {
			star.MoveTo(x, y)
		} else {
			star.LineTo(x, y)
		}
	}
	star.Close()
	c.SetZIndex(1)
	c.FillPath(star, gg.RGB(1, 1, 0), gg.FillRuleNonZero)
	c.SetZIndex(0)
}

func drawBanner(c canvas.Canvas, src *text.FontSource) {
	c.DrawSection("banner")
	c.DrawImage(gradient(64, 32), 20, 20, 160, 80)

	round := gg.NewPath()
	round.Circle(300, 60, 40)
	c.ClipPath(round, gg.FillRuleEvenOdd)
	c.FillRect(250, 10, 100, 100, gg.RGB(0.9, 0.2, 0.3))

	c.DrawText("gogpu.dev", 20, 160, src.Face(24), gg.Black)
	c.Translate(20, 140)
	c.DrawHyperlink("https://github.com/gogpu/gg", 120, 24)
}

// gradient returns a w×h image shading from blue to green.
func gradient(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: 0,
				G: uint8(255 * x / (w - 1)),
				B: uint8(255 - 255*x/(w-1)),
				A: 255,
			})
		}
	}
	return img
}

func structure() *hierarchy.Element {
	page := func(n int, s companion.Size, hint string, children ...*hierarchy.Element) *hierarchy.Element {
		return &hierarchy.Element{
			ElementType:   "Page",
			Hint:          hint,
			PageLocations: []hierarchy.PageLocation{{PageNumber: n, Right: s.Width, Bottom: s.Height}},
			Children:      children,
		}
	}
	label := func(n int, hint string, l, t, r, b float64) *hierarchy.Element {
		return &hierarchy.Element{
			ElementType:   "Text",
			Hint:          hint,
			PageLocations: []hierarchy.PageLocation{{PageNumber: n, Left: l, Top: t, Right: r, Bottom: b}},
			Properties:    []hierarchy.Property{{Label: "Font", Value: "Go Regular"}},
		}
	}

	return &hierarchy.Element{
		ElementType: "Document",
		Children: []*hierarchy.Element{
			page(1, A4, "cover",
				label(1, "gg companion", 48, 80, 320, 130),
				label(1, "body", 48, 248, 540, 300),
			),
			page(2, Square, "squares"),
			page(3, Banner, "banner",
				&hierarchy.Element{
					ElementType:   "Image",
					PageLocations: []hierarchy.PageLocation{{PageNumber: 3, Left: 20, Top: 20, Right: 180, Bottom: 100}},
					Properties: []hierarchy.Property{
						{Label: "Width", Value: "64"},
						{Label: "Height", Value: "32"},
					},
				},
				label(3, "gogpu.dev", 20, 136, 140, 166),
			),
		},
	}
}
