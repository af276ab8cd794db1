// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package noop provides implementations which discard everything.
package noop

import (
	"context"
	"log/slog"
)

// LogHandler is an slog.Handler which drops every record.
type LogHandler struct{}

// Enabled implements the slog.Handler interface. It always reports false
// so callers can skip building attributes altogether.
func (LogHandler) Enabled(_ context.Context, _ slog.Level) bool { return false }

// Handle implements the slog.Handler interface.
func (LogHandler) Handle(_ context.Context, _ slog.Record) error { return nil }

// WithAttrs implements the slog.Handler interface.
func (h LogHandler) WithAttrs(_ []slog.Attr) slog.Handler { return h }

// WithGroup implements the slog.Handler interface.
func (h LogHandler) WithGroup(_ string) slog.Handler { return h }

// Logger returns an *slog.Logger backed by LogHandler.
func Logger() *slog.Logger {
	return slog.New(LogHandler{})
}
