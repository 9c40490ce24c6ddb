// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package transport

import (
	"context"
	"errors"
	"time"

	companion "github.com/gogpu/gg-companion"
	"github.com/gogpu/gg-companion/capture"
)

// DefaultPollInterval is used by Serve when interval is not positive.
const DefaultPollInterval = 250 * time.Millisecond

// Serve publishes doc and then answers snapshot requests every interval
// until ctx is cancelled. Connection failures are logged and retried on
// the next tick; a structure update that failed is re-sent before polling
// resumes. Serve returns nil when ctx is cancelled.
func (c *Client) Serve(ctx context.Context, doc *capture.DocumentSnapshot, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	log := companion.Logger().With("url", c.baseURL, "document", doc.ID)
	log.Info("transport: serving document", "pages", doc.Len())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	published := false
	for {
		if !published {
			if err := c.UpdateDocumentStructure(ctx, doc); err != nil {
				if ctx.Err() != nil {
					break
				}
				log.Warn("transport: structure update failed", "err", err)
			} else {
				published = true
				log.Debug("transport: structure published")
			}
		}
		if published {
			if err := c.answer(ctx, doc); err != nil {
				if ctx.Err() != nil {
					break
				}
				log.Warn("transport: poll failed", "err", err)
				if errors.Is(err, ErrUnavailable) {
					published = false
				}
			}
		}

		select {
		case <-ctx.Done():
			log.Info("transport: stopped")
			return nil
		case <-ticker.C:
		}
	}
	log.Info("transport: stopped")
	return nil
}

func (c *Client) answer(ctx context.Context, doc *capture.DocumentSnapshot) error {
	reqs, err := c.RequestedSnapshots(ctx)
	if err != nil {
		return err
	}
	if len(reqs) == 0 {
		return nil
	}
	snaps := Render(doc, reqs)
	companion.Logger().Debug("transport: sending snapshots", "requested", len(reqs), "rendered", len(snaps))
	return c.SendSnapshots(ctx, snaps)
}
