// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	companion "github.com/gogpu/gg-companion"
	"github.com/gogpu/gg-companion/capture"
	"github.com/gogpu/gg-companion/hierarchy"
)

// fakeApp mimics the companion application.
type fakeApp struct {
	mu        sync.Mutex
	structure *DocumentStructure
	clientIDs []string
	pending   []SnapshotRequest
	received  []RenderedSnapshot
	failPing  bool
}

func (a *fakeApp) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		defer a.mu.Unlock()
		if a.failPing {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /v1/update/document/structure", func(w http.ResponseWriter, r *http.Request) {
		var s DocumentStructure
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		a.mu.Lock()
		a.structure = &s
		a.clientIDs = append(a.clientIDs, r.Header.Get(ClientHeader))
		a.mu.Unlock()
	})
	mux.HandleFunc("GET /v1/get/requested-page-snapshots", func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		reqs := a.pending
		a.pending = nil
		a.mu.Unlock()
		if reqs == nil {
			reqs = []SnapshotRequest{}
		}
		_ = json.NewEncoder(w).Encode(reqs)
	})
	mux.HandleFunc("POST /v1/update/page-snapshots", func(w http.ResponseWriter, r *http.Request) {
		var snaps []RenderedSnapshot
		if err := json.NewDecoder(r.Body).Decode(&snaps); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		a.mu.Lock()
		a.received = append(a.received, snaps...)
		a.mu.Unlock()
	})
	return mux
}

func (a *fakeApp) receivedCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.received)
}

func newDocument(t *testing.T) *capture.DocumentSnapshot {
	t.Helper()
	dc := capture.NewDocumentCanvas()
	t.Cleanup(func() { _ = dc.Close() })

	dc.BeginDocument()
	dc.BeginPage(companion.Size{Width: 300, Height: 300})
	dc.DrawingCanvas().FillRect(10, 10, 100, 100, gg.Black)
	dc.EndPage()
	dc.BeginPage(companion.Size{Width: 400, Height: 200})
	dc.EndPage()
	dc.SetHierarchy(&hierarchy.Element{ElementType: "Document"})
	dc.EndDocument()
	return dc.Content()
}

func TestPing(t *testing.T) {
	app := &fakeApp{}
	srv := httptest.NewServer(app.handler())
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	require.NoError(t, c.Ping(context.Background()))

	app.mu.Lock()
	app.failPing = true
	app.mu.Unlock()
	err := c.Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "503")
}

func TestPingUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewClient(url).Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewClientDefaults(t *testing.T) {
	assert.Equal(t, DefaultURL, NewClient("").BaseURL())
	assert.Equal(t, "http://example.com:1", NewClient("http://example.com:1///").BaseURL())
}

func TestUpdateDocumentStructure(t *testing.T) {
	app := &fakeApp{}
	srv := httptest.NewServer(app.handler())
	defer srv.Close()

	doc := newDocument(t)
	c := NewClient(srv.URL)
	require.NoError(t, c.UpdateDocumentStructure(context.Background(), doc))

	require.NotNil(t, app.structure)
	assert.Equal(t, []PageSize{{300, 300}, {400, 200}}, app.structure.Pages)
	require.NotNil(t, app.structure.Hierarchy)
	assert.Equal(t, "Document", app.structure.Hierarchy.ElementType)
	assert.Equal(t, []string{doc.ID.String()}, app.clientIDs)
}

func TestRequestedSnapshotsAndSend(t *testing.T) {
	app := &fakeApp{pending: []SnapshotRequest{{PageIndex: 1, ZoomLevel: 0}}}
	srv := httptest.NewServer(app.handler())
	defer srv.Close()

	c := NewClient(srv.URL, WithClientID("abc"), WithHTTPClient(srv.Client()))
	reqs, err := c.RequestedSnapshots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []SnapshotRequest{{PageIndex: 1, ZoomLevel: 0}}, reqs)

	snaps := Render(newDocument(t), reqs)
	require.Len(t, snaps, 1)
	require.NoError(t, c.SendSnapshots(context.Background(), snaps))

	require.Equal(t, 1, app.receivedCount())
	got := app.received[0]
	assert.Equal(t, 1, got.PageIndex)
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(got.ImageData))
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
}

func TestSendSnapshotsEmptyIsNoop(t *testing.T) {
	c := NewClient("http://127.0.0.1:1")
	assert.NoError(t, c.SendSnapshots(context.Background(), nil))
}

func TestImageDataIsBase64(t *testing.T) {
	data, err := json.Marshal(RenderedSnapshot{PageIndex: 2, ZoomLevel: 1, ImageData: []byte{0xff, 0xd8}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"pageIndex":2,"zoomLevel":1,"imageData":"/9g="}`, string(data))
}

func TestRenderSkipsBadRequests(t *testing.T) {
	doc := newDocument(t)
	snaps := Render(doc, []SnapshotRequest{
		{PageIndex: 0, ZoomLevel: -1},
		{PageIndex: 7, ZoomLevel: 0},
		{PageIndex: 1, ZoomLevel: 40},
		{PageIndex: 1, ZoomLevel: 1},
	})
	require.Len(t, snaps, 2)
	assert.Equal(t, SnapshotRequest{0, -1}, SnapshotRequest{snaps[0].PageIndex, snaps[0].ZoomLevel})
	assert.Equal(t, SnapshotRequest{1, 1}, SnapshotRequest{snaps[1].PageIndex, snaps[1].ZoomLevel})
}

func TestServeAnswersRequests(t *testing.T) {
	app := &fakeApp{pending: []SnapshotRequest{{PageIndex: 0, ZoomLevel: 0}, {PageIndex: 1, ZoomLevel: 1}}}
	srv := httptest.NewServer(app.handler())
	defer srv.Close()

	doc := newDocument(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewClient(srv.URL).Serve(ctx, doc, 5*time.Millisecond)
	}()

	assert.Eventually(t, func() bool { return app.receivedCount() == 2 }, 5*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not stop after cancellation")
	}
}

func TestServeRetriesUntilAvailable(t *testing.T) {
	app := &fakeApp{pending: []SnapshotRequest{{PageIndex: 0, ZoomLevel: 0}}}
	var mu sync.Mutex
	up := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		ok := up
		mu.Unlock()
		if !ok {
			http.Error(w, "starting", http.StatusServiceUnavailable)
			return
		}
		app.handler().ServeHTTP(w, r)
	}))
	defer srv.Close()

	doc := newDocument(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	defer func() {
		cancel()
		<-done
	}()
	go func() {
		defer close(done)
		_ = NewClient(srv.URL).Serve(ctx, doc, 5*time.Millisecond)
	}()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0, app.receivedCount())

	mu.Lock()
	up = true
	mu.Unlock()
	assert.Eventually(t, func() bool { return app.receivedCount() == 1 }, 5*time.Second, 5*time.Millisecond)
}
