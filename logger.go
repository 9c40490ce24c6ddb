// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package companion

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled reports false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for the companion module and all its
// sub-packages. By default nothing is logged. Pass nil to restore the
// silent default.
//
// The logger is also handed to gg via gg.SetLogger, so rasteriser
// diagnostics end up in the same place.
//
// Log levels used:
//   - [slog.LevelDebug]: page begin/end, renders, proxy retargeting
//   - [slog.LevelInfo]: document lifecycle, server and client lifecycle
//   - [slog.LevelWarn]: missed Close, resource release errors, skipped requests
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	gg.SetLogger(l)
}

// Logger returns the current logger. Sub-packages call this to share the
// same configuration. Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
