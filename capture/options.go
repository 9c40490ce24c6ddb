// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package capture

import "github.com/google/uuid"

// Option configures a DocumentCanvas during creation.
type Option func(*options)

type options struct {
	name  string
	newID func() uuid.UUID
}

func defaultOptions() options {
	return options{
		name:  "document",
		newID: uuid.New,
	}
}

// WithName sets the label used for the canvas in log records.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithIDGenerator replaces the generator of document IDs. The default
// produces random (version 4) UUIDs.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}
