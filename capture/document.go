// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package capture

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	companion "github.com/gogpu/gg-companion"
	"github.com/gogpu/gg-companion/hierarchy"
)

// DocumentSnapshot is the captured content of a document: its pages in
// order plus the structure tree supplied by the layout engine.
//
// The snapshot returned by DocumentCanvas.Content is the controller's live
// collection. Use Clone for a copy that survives the next BeginDocument.
type DocumentSnapshot struct {
	ID        uuid.UUID          `json:"id"`
	Pages     []*PageSnapshot    `json:"-"`
	Hierarchy *hierarchy.Element `json:"hierarchy,omitempty"`
}

// Len returns the number of pages.
func (d *DocumentSnapshot) Len() int {
	return len(d.Pages)
}

// Page returns the page at index i.
func (d *DocumentSnapshot) Page(i int) (*PageSnapshot, error) {
	if i < 0 || i >= len(d.Pages) {
		return nil, fmt.Errorf("%w: %d (document has %d pages)", ErrPageIndex, i, len(d.Pages))
	}
	return d.Pages[i], nil
}

// PageSizes returns the logical size of every page, in page order.
func (d *DocumentSnapshot) PageSizes() []companion.Size {
	sizes := make([]companion.Size, len(d.Pages))
	for i, p := range d.Pages {
		sizes[i] = p.Size
	}
	return sizes
}

// Clone returns a copy that holds its own reference to every page picture.
// The caller must Close the clone.
func (d *DocumentSnapshot) Clone() *DocumentSnapshot {
	c := &DocumentSnapshot{
		ID:        d.ID,
		Pages:     make([]*PageSnapshot, len(d.Pages)),
		Hierarchy: d.Hierarchy,
	}
	for i, p := range d.Pages {
		c.Pages[i] = &PageSnapshot{Picture: p.Picture.Retain(), Size: p.Size}
	}
	return c
}

// Close drops this snapshot's reference to every page picture and empties
// the page list. Close is idempotent.
func (d *DocumentSnapshot) Close() error {
	var errs []error
	for _, p := range d.Pages {
		if err := p.Picture.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	d.Pages = nil
	return errors.Join(errs...)
}
