// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package preview serves captured documents over HTTP so pages can be
// inspected from a browser or scripted tools.
//
// Routes:
//
//	GET /ping                          liveness, answers "pong"
//	GET /v1/document                   document ID, page sizes, hierarchy (JSON)
//	GET /v1/pages/{index}/image?zoom=Z page index (0-based) as JPEG at zoom Z
//
// Page images carry an ETag derived from the document ID, page index and
// zoom, so unchanged pages are answered with 304 Not Modified.
package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	companion "github.com/gogpu/gg-companion"
	"github.com/gogpu/gg-companion/capture"
	"github.com/gogpu/gg-companion/hierarchy"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:12501"

// MaxZoom bounds the accepted zoom level in both directions.
const MaxZoom = 16

// ContentSource provides the document being served. *capture.DocumentCanvas
// satisfies it.
//
// The server reads the snapshot from request goroutines, so the source must
// not be mutated while the server runs.
type ContentSource interface {
	Content() *capture.DocumentSnapshot
}

// ContentFunc adapts a function to ContentSource.
type ContentFunc func() *capture.DocumentSnapshot

// Content implements ContentSource.
func (f ContentFunc) Content() *capture.DocumentSnapshot { return f() }

// Document is the JSON body of GET /v1/document.
type Document struct {
	ID        uuid.UUID          `json:"id"`
	Pages     []companion.Size   `json:"pages"`
	Hierarchy *hierarchy.Element `json:"hierarchy,omitempty"`
}

// Server is the preview HTTP server.
type Server struct {
	src         ContentSource
	addr        string
	defaultZoom int
	limiter     *rate.Limiter
	router      chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithDefaultZoom sets the zoom used when a request has no zoom parameter.
func WithDefaultZoom(zoom int) Option {
	return func(s *Server) {
		s.defaultZoom = zoom
	}
}

// WithRenderLimit caps page renders at r per second with the given burst.
// Requests over the limit are answered with 429 Too Many Requests.
func WithRenderLimit(r rate.Limit, burst int) Option {
	return func(s *Server) {
		s.limiter = rate.NewLimiter(r, burst)
	}
}

// NewServer creates a server for src.
func NewServer(src ContentSource, opts ...Option) *Server {
	s := &Server{
		src:  src,
		addr: DefaultAddr,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/ping", s.handlePing)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/document", s.handleDocument)
		r.Get("/pages/{index}/image", s.handlePageImage)
	})
	s.router = r
	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.addr
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("preview: listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		companion.Logger().Info("preview: listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("preview: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("preview: shutdown: %w", err)
	}
	companion.Logger().Info("preview: stopped")
	return nil
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("pong"))
}

func (s *Server) handleDocument(w http.ResponseWriter, _ *http.Request) {
	doc := s.src.Content()
	writeJSON(w, http.StatusOK, Document{
		ID:        doc.ID,
		Pages:     doc.PageSizes(),
		Hierarchy: doc.Hierarchy,
	})
}

func (s *Server) handlePageImage(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid page index")
		return
	}
	zoom := s.defaultZoom
	if z := r.URL.Query().Get("zoom"); z != "" {
		zoom, err = strconv.Atoi(z)
		if err != nil || zoom < -MaxZoom || zoom > MaxZoom {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("zoom must be an integer in [%d, %d]", -MaxZoom, MaxZoom))
			return
		}
	}

	doc := s.src.Content()
	page, err := doc.Page(index)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	etag := fmt.Sprintf(`"%s-%d-%d"`, doc.ID, index, zoom)
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if s.limiter != nil && !s.limiter.Allow() {
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusTooManyRequests, "render limit exceeded")
		return
	}

	var buf bytes.Buffer
	if err := page.RenderImageTo(&buf, zoom); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, companion.ErrAllocation) {
			status = http.StatusRequestEntityTooLarge
		}
		companion.Logger().Warn("preview: render failed", "page", index, "zoom", zoom, "err", err)
		writeError(w, status, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// logRequests logs every request at debug level through the package logger.
func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		companion.Logger().Debug("preview: request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
