// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package capture

// State is the lifecycle state of a DocumentCanvas.
type State uint8

const (
	// Idle means no document has been started, or the last one ended.
	Idle State = iota

	// DocumentOpen means a document is in progress with no page open.
	DocumentOpen

	// PageOpen means a page is being drawn.
	PageOpen

	// Closed means the canvas has been released.
	Closed
)

var stateNames = [...]string{
	Idle:         "Idle",
	DocumentOpen: "DocumentOpen",
	PageOpen:     "PageOpen",
	Closed:       "Closed",
}

// String returns the state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}
