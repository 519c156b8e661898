// Copyright (c) 2025 The Keel developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package log is a thin layer over go-ethereum's slog based logger.
// Package level loggers are created at init time via WithContext, and the
// output handler can be swapped later by the command line entry.
package log

import (
	"context"
	"log/slog"
	"sync/atomic"

	ethlog "github.com/ethereum/go-ethereum/log"
)

// Logger is the structured logger used across the repo.
type Logger = ethlog.Logger

// Legacy verbosity levels, as accepted by the --verbosity flag.
const (
	LegacyLevelCrit = iota
	LegacyLevelError
	LegacyLevelWarn
	LegacyLevelInfo
	LegacyLevelDebug
	LegacyLevelTrace
)

var root = newSwapHandler(ethlog.DiscardHandler())

// FromLegacyLevel converts a legacy verbosity into a slog level.
func FromLegacyLevel(lvl int) slog.Level {
	return ethlog.FromLegacyLevel(lvl)
}

// SetDefault replaces the handler every logger writes to, including
// loggers created before the call.
func SetDefault(h slog.Handler) {
	root.swap(h)
}

// Root returns the root logger.
func Root() Logger {
	return ethlog.NewLogger(root)
}

// WithContext returns a logger carrying the given key/value pairs.
func WithContext(ctx ...any) Logger {
	return Root().With(ctx...)
}

// DiscardHandler returns a handler dropping all records.
func DiscardHandler() slog.Handler {
	return ethlog.DiscardHandler()
}

type swapHandler struct {
	h atomic.Pointer[slog.Handler]
}

func newSwapHandler(h slog.Handler) *swapHandler {
	s := &swapHandler{}
	s.swap(h)
	return s
}

func (s *swapHandler) swap(h slog.Handler) {
	s.h.Store(&h)
}

func (s *swapHandler) current() slog.Handler {
	return *s.h.Load()
}

func (s *swapHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return s.current().Enabled(ctx, lvl)
}

func (s *swapHandler) Handle(ctx context.Context, r slog.Record) error {
	return s.current().Handle(ctx, r)
}

func (s *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &attrHandler{root: s, attrs: attrs}
}

func (s *swapHandler) WithGroup(_ string) slog.Handler {
	panic("not implemented")
}

// attrHandler holds attrs and resolves the root handler at Handle time,
// so a handler swap is seen by loggers created earlier.
type attrHandler struct {
	root  *swapHandler
	attrs []slog.Attr
}

func (a *attrHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return a.root.Enabled(ctx, lvl)
}

func (a *attrHandler) Handle(ctx context.Context, r slog.Record) error {
	return a.root.current().WithAttrs(a.attrs).Handle(ctx, r)
}

func (a *attrHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(a.attrs)+len(attrs))
	merged = append(merged, a.attrs...)
	merged = append(merged, attrs...)
	return &attrHandler{root: a.root, attrs: merged}
}

func (a *attrHandler) WithGroup(_ string) slog.Handler {
	panic("not implemented")
}
