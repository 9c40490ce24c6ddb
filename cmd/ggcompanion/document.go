// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"errors"

	"github.com/gogpu/gg/text"

	"github.com/gogpu/gg-companion/capture"
	"github.com/gogpu/gg-companion/internal/demo"
)

// session holds a captured sample document and the font its pages use.
// Pages render only while the session is open.
type session struct {
	*capture.DocumentCanvas
	font *text.FontSource
}

func captureDemo() (*session, error) {
	src, err := demo.LoadFont()
	if err != nil {
		return nil, err
	}
	dc := capture.NewDocumentCanvas(capture.WithName("demo"))
	demo.Draw(dc, src)
	return &session{DocumentCanvas: dc, font: src}, nil
}

// Close releases the pages, then the font.
func (s *session) Close() error {
	return errors.Join(s.DocumentCanvas.Close(), s.font.Close())
}
