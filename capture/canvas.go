// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package capture

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/google/uuid"

	companion "github.com/gogpu/gg-companion"
	"github.com/gogpu/gg-companion/canvas"
	"github.com/gogpu/gg-companion/hierarchy"
	"github.com/gogpu/gg-companion/picture"
)

// DocumentCanvas is the page capture controller. It hands out a single
// redirectable drawing surface and snapshots it at every page boundary.
//
// DocumentCanvas is NOT safe for concurrent use. The snapshots it produces
// are.
type DocumentCanvas struct {
	doc     *document
	cleanup runtime.Cleanup
}

// document is the state released either by Close or by the cleanup that
// fires when a DocumentCanvas is collected without being closed. It must
// not point back at its DocumentCanvas.
type document struct {
	name    string
	newID   func() uuid.UUID
	proxy   *canvas.Proxy
	content *DocumentSnapshot
	size    companion.Size
	state   State
}

// NewDocumentCanvas creates a controller in the Idle state.
func NewDocumentCanvas(opts ...Option) *DocumentCanvas {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	doc := &document{
		name:    o.name,
		newID:   o.newID,
		proxy:   canvas.NewProxy(),
		content: &DocumentSnapshot{ID: o.newID()},
		state:   Idle,
	}
	dc := &DocumentCanvas{doc: doc}
	dc.cleanup = runtime.AddCleanup(dc, leaked, doc)
	return dc
}

func leaked(doc *document) {
	companion.Logger().Warn("capture: document canvas was not closed",
		"name", doc.name, "pages", doc.content.Len())
	if err := doc.release(); err != nil {
		companion.Logger().Warn("capture: release failed", "name", doc.name, "err", err)
	}
}

// State returns the lifecycle state.
func (dc *DocumentCanvas) State() State {
	return dc.doc.state
}

// DrawingCanvas returns the surface that page content is drawn on. The
// same value is returned for the lifetime of the controller; its target
// changes at every BeginPage.
func (dc *DocumentCanvas) DrawingCanvas() canvas.Canvas {
	return dc.doc.proxy
}

// Content returns the live document snapshot. It is not a copy: pages
// appended later are visible through it and BeginDocument empties it.
func (dc *DocumentCanvas) Content() *DocumentSnapshot {
	return dc.doc.content
}

// SetHierarchy stores the document structure tree.
func (dc *DocumentCanvas) SetHierarchy(root *hierarchy.Element) {
	dc.doc.content.Hierarchy = root
}

// Hierarchy returns the document structure tree, or nil.
func (dc *DocumentCanvas) Hierarchy() *hierarchy.Element {
	return dc.doc.content.Hierarchy
}

// BeginDocument starts a new document. Every previously captured page is
// released and a new document ID is assigned. An unfinished document,
// including an open page, is discarded.
func (dc *DocumentCanvas) BeginDocument() {
	d := dc.doc
	d.mustNotBeClosed("BeginDocument")

	if err := d.content.Close(); err != nil {
		companion.Logger().Warn("capture: release pages failed", "name", d.name, "err", err)
	}
	if d.state == PageOpen {
		d.closeTarget(nil)
	}
	d.content.ID = d.newID()
	d.size = companion.Zero
	d.state = DocumentOpen

	companion.Logger().Info("capture: document started", "name", d.name, "id", d.content.ID)
}

// BeginPage opens a page of the given size and points the drawing surface
// at a fresh recording. It panics with a *LifecycleError if a page is
// already open.
func (dc *DocumentCanvas) BeginPage(size companion.Size) {
	d := dc.doc
	d.mustNotBeClosed("BeginPage")
	if d.state == PageOpen {
		panic(&LifecycleError{
			Op:     "BeginPage",
			State:  d.state,
			Reason: fmt.Sprintf("page %d is still open", d.content.Len()+1),
		})
	}

	d.size = size
	d.closeTarget(picture.BeginRecording(size.Width, size.Height))
	d.proxy.SetZIndex(0)
	d.state = PageOpen

	companion.Logger().Debug("capture: page started",
		"name", d.name, "page", d.content.Len()+1, "size", size)
}

// EndPage freezes the open page into a PageSnapshot and appends it to the
// content. It panics with a *LifecycleError, appending nothing, if the page
// size is degenerate or no page is open.
func (dc *DocumentCanvas) EndPage() {
	d := dc.doc
	d.mustNotBeClosed("EndPage")
	if d.size.IsCloseToZero() {
		panic(&LifecycleError{
			Op:     "EndPage",
			State:  d.state,
			Reason: fmt.Sprintf("page size %s is degenerate", d.size),
		})
	}

	snap, err := d.proxy.Snapshot()
	if err != nil {
		panic(&LifecycleError{Op: "EndPage", State: d.state, Reason: err.Error()})
	}
	defer func() {
		if err := snap.Close(); err != nil {
			companion.Logger().Warn("capture: release page surface failed", "name", d.name, "err", err)
		}
	}()
	rec := picture.BeginRecording(d.size.Width, d.size.Height)
	if err := snap.DrawOn(rec); err != nil {
		_ = rec.Close()
		panic(&LifecycleError{Op: "EndPage", State: d.state, Reason: "page replay failed: " + err.Error()})
	}
	pic := rec.EndRecording()

	d.content.Pages = append(d.content.Pages, &PageSnapshot{Picture: pic, Size: d.size})
	companion.Logger().Debug("capture: page finished",
		"name", d.name, "page", d.content.Len(), "size", d.size, "ops", pic.Len())

	d.size = companion.Zero
	d.state = DocumentOpen
}

// EndDocument finishes the document. The captured pages stay available
// through Content until the next BeginDocument or Close.
func (dc *DocumentCanvas) EndDocument() {
	d := dc.doc
	d.mustNotBeClosed("EndDocument")
	if d.state == PageOpen {
		companion.Logger().Warn("capture: document ended with an open page", "name", d.name)
	}
	d.state = Idle
	companion.Logger().Info("capture: document finished",
		"name", d.name, "id", d.content.ID, "pages", d.content.Len())
}

// Close releases the drawing surface and every captured page. Close is
// idempotent; after it the content is empty and lifecycle calls panic.
func (dc *DocumentCanvas) Close() error {
	if dc.doc.state == Closed {
		return nil
	}
	dc.cleanup.Stop()
	return dc.doc.release()
}

func (d *document) mustNotBeClosed(op string) {
	if d.state == Closed {
		panic(&LifecycleError{Op: op, State: d.state, Reason: "document canvas is closed"})
	}
}

// closeTarget points the proxy at next and closes the previous target.
func (d *document) closeTarget(next canvas.Canvas) {
	prev := d.proxy.Target()
	d.proxy.SetTarget(next)
	if c, ok := prev.(io.Closer); ok {
		if err := c.Close(); err != nil {
			companion.Logger().Warn("capture: close page surface failed", "name", d.name, "err", err)
		}
	}
}

func (d *document) release() error {
	d.state = Closed
	return errors.Join(d.proxy.Close(), d.content.Close())
}
