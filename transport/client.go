// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package transport talks to the companion application, the desktop tool
// that displays captured documents.
//
// The exchange is pull based: the client publishes the document structure,
// then repeatedly asks which page images the application wants and answers
// with JPEG snapshots rendered at the requested zoom.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	companion "github.com/gogpu/gg-companion"
	"github.com/gogpu/gg-companion/capture"
	"github.com/gogpu/gg-companion/hierarchy"
)

// DefaultURL is where the companion application listens by default.
const DefaultURL = "http://localhost:12500"

// ClientHeader carries the document ID on every request.
const ClientHeader = "X-Companion-Client"

// ErrUnavailable is returned when the companion application cannot be
// reached or answers with an error status.
var ErrUnavailable = errors.New("transport: companion application unavailable")

// API paths.
const (
	pathPing              = "/ping"
	pathDocumentStructure = "/v1/update/document/structure"
	pathRequestedPages    = "/v1/get/requested-page-snapshots"
	pathPageSnapshots     = "/v1/update/page-snapshots"
)

// SnapshotRequest asks for one page image.
type SnapshotRequest struct {
	PageIndex int `json:"pageIndex"`
	ZoomLevel int `json:"zoomLevel"`
}

// RenderedSnapshot answers a SnapshotRequest. ImageData is JPEG and is
// sent base64 encoded.
type RenderedSnapshot struct {
	PageIndex int    `json:"pageIndex"`
	ZoomLevel int    `json:"zoomLevel"`
	ImageData []byte `json:"imageData"`
}

// PageSize is the size of one page in the document structure message.
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DocumentStructure is the body of the structure update.
type DocumentStructure struct {
	Pages     []PageSize         `json:"pages"`
	Hierarchy *hierarchy.Element `json:"hierarchy,omitempty"`
}

// Client is an HTTP client for the companion application.
// Client is NOT safe for concurrent use.
type Client struct {
	baseURL  string
	http     *http.Client
	clientID string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (10 s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithClientID sets the value sent in the X-Companion-Client header.
func WithClientID(id string) Option {
	return func(c *Client) {
		c.clientID = id
	}
}

// NewClient creates a client for the application at baseURL. An empty
// baseURL selects DefaultURL.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the application address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping checks that the application is running.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, pathPing, nil, nil)
}

// NewDocumentStructure builds the structure message for doc.
func NewDocumentStructure(doc *capture.DocumentSnapshot) DocumentStructure {
	sizes := doc.PageSizes()
	pages := make([]PageSize, len(sizes))
	for i, s := range sizes {
		pages[i] = PageSize{Width: s.Width, Height: s.Height}
	}
	return DocumentStructure{Pages: pages, Hierarchy: doc.Hierarchy}
}

// UpdateDocumentStructure publishes the page sizes and hierarchy of doc.
// Subsequent requests identify themselves with the document ID.
func (c *Client) UpdateDocumentStructure(ctx context.Context, doc *capture.DocumentSnapshot) error {
	c.clientID = doc.ID.String()
	return c.do(ctx, http.MethodPost, pathDocumentStructure, NewDocumentStructure(doc), nil)
}

// RequestedSnapshots returns the page images the application is waiting for.
func (c *Client) RequestedSnapshots(ctx context.Context) ([]SnapshotRequest, error) {
	var reqs []SnapshotRequest
	if err := c.do(ctx, http.MethodGet, pathRequestedPages, nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// SendSnapshots delivers rendered page images.
func (c *Client) SendSnapshots(ctx context.Context, snaps []RenderedSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}
	return c.do(ctx, http.MethodPost, pathPageSnapshots, snaps, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("transport: marshal %s: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("transport: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.clientID != "" {
		req.Header.Set(ClientHeader, c.clientID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: HTTP %d from %s: %s", ErrUnavailable, resp.StatusCode, url, bytes.TrimSpace(msg))
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("transport: decode %s: %w", path, err)
	}
	return nil
}

// Render answers reqs from doc. Requests for unknown pages or zoom levels
// that cannot be rasterised are logged and skipped.
func Render(doc *capture.DocumentSnapshot, reqs []SnapshotRequest) []RenderedSnapshot {
	out := make([]RenderedSnapshot, 0, len(reqs))
	for _, r := range reqs {
		page, err := doc.Page(r.PageIndex)
		if err != nil {
			companion.Logger().Warn("transport: skipping snapshot request", "page", r.PageIndex, "err", err)
			continue
		}
		data, err := page.RenderImage(r.ZoomLevel)
		if err != nil {
			companion.Logger().Warn("transport: render failed",
				"page", r.PageIndex, "zoom", r.ZoomLevel, "err", err)
			continue
		}
		out = append(out, RenderedSnapshot{PageIndex: r.PageIndex, ZoomLevel: r.ZoomLevel, ImageData: data})
	}
	return out
}
