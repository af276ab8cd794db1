// Copyright (c) 2023 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package otelslog ties the logs of a run to its trace.
package otelslog

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// GroupKey is the attribute group holding the span identifiers.
const GroupKey = "otel"

// Handler is an slog.Handler which adds the identifiers of the span
// found in the record's context under [GroupKey]. Records logged
// outside of a span are passed through unchanged.
type Handler struct {
	next slog.Handler
}

// NewHandler returns a Handler forwarding records to next.
func NewHandler(next slog.Handler) *Handler {
	return &Handler{next: next}
}

// New is shorthand for slog.New(NewHandler(next)).
func New(next slog.Handler) *slog.Logger {
	return slog.New(NewHandler(next))
}

// Enabled implements the slog.Handler interface.
func (h *Handler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.next.Enabled(ctx, lvl)
}

// Handle implements the slog.Handler interface.
func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return h.next.Handle(ctx, record)
	}

	r := record.Clone()
	r.AddAttrs(spanAttr(sc))
	return h.next.Handle(ctx, r)
}

func spanAttr(sc trace.SpanContext) slog.Attr {
	return slog.Group(
		GroupKey,
		slog.String("trace_id", sc.TraceID().String()),
		slog.String("span_id", sc.SpanID().String()),
		slog.Bool("sampled", sc.IsSampled()),
	)
}

// WithAttrs implements the slog.Handler interface.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewHandler(h.next.WithAttrs(attrs))
}

// WithGroup implements the slog.Handler interface.
func (h *Handler) WithGroup(name string) slog.Handler {
	return NewHandler(h.next.WithGroup(name))
}
