// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"image/jpeg"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	companion "github.com/gogpu/gg-companion"
	"github.com/gogpu/gg-companion/capture"
	"github.com/gogpu/gg-companion/hierarchy"
)

func newCanvas(t *testing.T) *capture.DocumentCanvas {
	t.Helper()
	dc := capture.NewDocumentCanvas()
	t.Cleanup(func() { _ = dc.Close() })

	dc.BeginDocument()
	dc.BeginPage(companion.Size{Width: 300, Height: 300})
	dc.DrawingCanvas().FillRect(0, 0, 150, 150, gg.Black)
	dc.EndPage()
	dc.BeginPage(companion.Size{Width: 400, Height: 200})
	dc.EndPage()
	dc.SetHierarchy(&hierarchy.Element{ElementType: "Document", Children: []*hierarchy.Element{{ElementType: "Page"}}})
	dc.EndDocument()
	return dc
}

func get(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPing(t *testing.T) {
	rec := get(t, NewServer(newCanvas(t)).Handler(), "/ping")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestDocument(t *testing.T) {
	dc := newCanvas(t)
	rec := get(t, NewServer(dc).Handler(), "/v1/document")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var doc Document
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, dc.Content().ID, doc.ID)
	assert.Equal(t, []companion.Size{{Width: 300, Height: 300}, {Width: 400, Height: 200}}, doc.Pages)
	require.NotNil(t, doc.Hierarchy)
	assert.Equal(t, 2, doc.Hierarchy.Count())
}

func TestPageImage(t *testing.T) {
	dc := newCanvas(t)
	h := NewServer(dc).Handler()

	tests := []struct {
		target       string
		wantW, wantH int
	}{
		{"/v1/pages/0/image", 300, 300},
		{"/v1/pages/0/image?zoom=1", 600, 600},
		{"/v1/pages/1/image?zoom=-1", 200, 100},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, h, tt.target)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			assert.Equal(t, "image/jpeg", rec.Header().Get("Content-Type"))
			assert.NotEmpty(t, rec.Header().Get("ETag"))

			cfg, err := jpeg.DecodeConfig(rec.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, cfg.Width)
			assert.Equal(t, tt.wantH, cfg.Height)
		})
	}
}

func TestPageImageDefaultZoom(t *testing.T) {
	rec := get(t, NewServer(newCanvas(t), WithDefaultZoom(1)).Handler(), "/v1/pages/1/image")
	require.Equal(t, http.StatusOK, rec.Code)
	cfg, err := jpeg.DecodeConfig(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
}

func TestPageImageETag(t *testing.T) {
	dc := newCanvas(t)
	h := NewServer(dc).Handler()

	first := get(t, h, "/v1/pages/0/image?zoom=0")
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")
	assert.Equal(t, fmt.Sprintf(`"%s-0-0"`, dc.Content().ID), etag)

	again := get(t, h, "/v1/pages/0/image?zoom=0", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, again.Code)
	assert.Zero(t, again.Body.Len())

	other := get(t, h, "/v1/pages/0/image?zoom=1", "If-None-Match", etag)
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestPageImageErrors(t *testing.T) {
	h := NewServer(newCanvas(t)).Handler()

	tests := []struct {
		target string
		want   int
	}{
		{"/v1/pages/2/image", http.StatusNotFound},
		{"/v1/pages/-1/image", http.StatusNotFound},
		{"/v1/pages/x/image", http.StatusBadRequest},
		{"/v1/pages/0/image?zoom=abc", http.StatusBadRequest},
		{"/v1/pages/0/image?zoom=17", http.StatusBadRequest},
		{"/v1/pages/0/image?zoom=16", http.StatusRequestEntityTooLarge},
		{"/v1/pages/0/image?zoom=-16", http.StatusRequestEntityTooLarge},
		{"/v1/nothing", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(t, h, tt.target)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestContentFunc(t *testing.T) {
	dc := newCanvas(t)
	src := ContentFunc(dc.Content)
	assert.Same(t, dc.Content(), src.Content())
}

func TestServeGracefulShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewServer(newCanvas(t))
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = http.Get("http://" + ln.Addr().String() + "/ping")
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}

func TestServerAddr(t *testing.T) {
	dc := newCanvas(t)
	assert.Equal(t, DefaultAddr, NewServer(dc).Addr())
	assert.Equal(t, ":9999", NewServer(dc, WithAddr(":9999")).Addr())
}

func TestPageImageRenderLimit(t *testing.T) {
	dc := newCanvas(t)
	h := NewServer(dc, WithRenderLimit(rate.Every(time.Hour), 1)).Handler()

	first := get(t, h, "/v1/pages/1/image?zoom=-2")
	assert.Equal(t, http.StatusOK, first.Code)

	second := get(t, h, "/v1/pages/1/image?zoom=-2")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "1", second.Header().Get("Retry-After"))

	// Cached pages do not consume the budget.
	cached := get(t, h, "/v1/pages/1/image?zoom=-2", "If-None-Match", first.Header().Get("ETag"))
	assert.Equal(t, http.StatusNotModified, cached.Code)
}
