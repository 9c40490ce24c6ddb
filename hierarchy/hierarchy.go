// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package hierarchy describes the structural tree of a captured document.
//
// The tree is produced by the layout engine that drives the capture and is
// consumed by inspection tools. The capture pipeline stores and forwards it
// without looking inside.
package hierarchy

import "slices"

// Element is one node of the document structure.
type Element struct {
	ElementType   string         `json:"elementType" yaml:"elementType"`
	Hint          string         `json:"hint,omitempty" yaml:"hint,omitempty"`
	PageLocations []PageLocation `json:"pageLocations,omitempty" yaml:"pageLocations,omitempty"`
	Properties    []Property     `json:"properties,omitempty" yaml:"properties,omitempty"`
	Children      []*Element     `json:"children,omitempty" yaml:"children,omitempty"`
}

// PageLocation is the area an element occupies on one page, in document
// units. PageNumber is 1-based.
type PageLocation struct {
	PageNumber int     `json:"pageNumber" yaml:"pageNumber"`
	Left       float64 `json:"left" yaml:"left"`
	Top        float64 `json:"top" yaml:"top"`
	Right      float64 `json:"right" yaml:"right"`
	Bottom     float64 `json:"bottom" yaml:"bottom"`
}

// Property is a labelled configuration value of an element.
type Property struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Walk visits e and its descendants depth-first, parents before children.
// If fn returns false the children of that element are skipped.
// Walk on a nil element does nothing.
func (e *Element) Walk(fn func(el *Element, depth int) bool) {
	e.walk(fn, 0)
}

func (e *Element) walk(fn func(*Element, int) bool, depth int) {
	if e == nil {
		return
	}
	if !fn(e, depth) {
		return
	}
	for _, c := range e.Children {
		c.walk(fn, depth+1)
	}
}

// Count returns the number of elements in the tree rooted at e.
func (e *Element) Count() int {
	n := 0
	e.Walk(func(*Element, int) bool {
		n++
		return true
	})
	return n
}

// Pages returns the distinct page numbers the tree touches, in ascending
// order.
func (e *Element) Pages() []int {
	seen := make(map[int]bool)
	var pages []int
	e.Walk(func(el *Element, _ int) bool {
		for _, loc := range el.PageLocations {
			if !seen[loc.PageNumber] {
				seen[loc.PageNumber] = true
				pages = append(pages, loc.PageNumber)
			}
		}
		return true
	})
	slices.Sort(pages)
	return pages
}

// Add appends children to e and returns e.
func (e *Element) Add(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Property returns the value of the property with the given label.
func (e *Element) Property(label string) (string, bool) {
	for _, p := range e.Properties {
		if p.Label == label {
			return p.Value, true
		}
	}
	return "", false
}
