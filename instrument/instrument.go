// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package instrument decorates harness capabilities with OpenTelemetry
// tracing and structured logging.
//
// The decorators are generic over the type they wrap and implement the same
// capability, so they can be used in a harness.Types descriptor in place of
// the wrapped type:
//
//	type Endpoint = harness.Types[
//	    harness.Error,
//	    *instrument.Input[*stdio.Reader],
//	    *instrument.Output[*stdio.Writer],
//	]
package instrument

import (
	"context"
	"log/slog"

	"github.com/z5labs/harness"
	"github.com/z5labs/harness/pkg/noop"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/z5labs/harness/instrument"

// LineAttrKey is the log attribute key holding the text read by an [Input].
const LineAttrKey = "line"

type options struct {
	tracer trace.Tracer
	logger *slog.Logger
}

// Option helps configure the decorators.
type Option interface {
	applyOption(*options)
}

type optionFunc func(*options)

func (f optionFunc) applyOption(opts *options) {
	f(opts)
}

// TracerProvider sets the trace.TracerProvider used to create spans.
// By default, the global one is used.
func TracerProvider(tp trace.TracerProvider) Option {
	return optionFunc(func(o *options) {
		o.tracer = tp.Tracer(instrumentationName)
	})
}

// Logger sets the logger. By default, nothing is logged.
func Logger(logger *slog.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = logger
	})
}

func newOptions(opts []Option) options {
	o := options{
		tracer: otel.Tracer(instrumentationName),
		logger: noop.Logger(),
	}
	for _, opt := range opts {
		opt.applyOption(&o)
	}
	return o
}

func fail(ctx context.Context, span trace.Span, log *slog.Logger, msg string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	log.ErrorContext(ctx, msg, slog.Any("error", err))
}

// Input wraps a harness.Input.
//
// The harness capabilities do not accept a context.Context, so the one
// given to [NewInput] is used as the parent of every span.
type Input[I harness.Input] struct {
	ctx    context.Context
	in     I
	tracer trace.Tracer
	log    *slog.Logger
}

// NewInput wraps in.
func NewInput[I harness.Input](ctx context.Context, in I, opts ...Option) *Input[I] {
	o := newOptions(opts)
	return &Input[I]{
		ctx:    ctx,
		in:     in,
		tracer: o.tracer,
		log:    o.logger,
	}
}

// Unwrap returns the wrapped harness.Input.
func (in *Input[I]) Unwrap() I {
	return in.in
}

// Read implements the harness.Input interface.
func (in *Input[I]) Read() (string, error) {
	spanCtx, span := in.tracer.Start(in.ctx, "Input.Read")
	defer span.End()

	line, err := in.in.Read()
	if err != nil {
		fail(spanCtx, span, in.log, "failed to read input", err)
		return line, err
	}

	span.SetAttributes(attribute.Int("harness.input.bytes", len(line)))
	in.log.DebugContext(spanCtx, "read input", slog.String(LineAttrKey, line))
	return line, nil
}

// Output wraps a harness.Output.
//
// The harness capabilities do not accept a context.Context, so the one
// given to [NewOutput] is used as the parent of every span.
type Output[O harness.Output] struct {
	ctx    context.Context
	out    O
	tracer trace.Tracer
	log    *slog.Logger
}

// NewOutput wraps out.
func NewOutput[O harness.Output](ctx context.Context, out O, opts ...Option) *Output[O] {
	o := newOptions(opts)
	return &Output[O]{
		ctx:    ctx,
		out:    out,
		tracer: o.tracer,
		log:    o.logger,
	}
}

// Unwrap returns the wrapped harness.Output.
func (out *Output[O]) Unwrap() O {
	return out.out
}

// Write implements the harness.Output interface.
func (out *Output[O]) Write(s string) error {
	spanCtx, span := out.tracer.Start(out.ctx, "Output.Write")
	defer span.End()

	span.SetAttributes(attribute.Int("harness.output.bytes", len(s)))

	err := out.out.Write(s)
	if err != nil {
		fail(spanCtx, span, out.log, "failed to write output", err)
		return err
	}

	out.log.DebugContext(spanCtx, "wrote output", slog.Int("bytes", len(s)))
	return nil
}

// Logic wraps a harness.Logic.
type Logic[T any, E harness.DomainError] struct {
	ctx    context.Context
	logic  harness.Logic[T, E]
	tracer trace.Tracer
	log    *slog.Logger
}

// NewLogic wraps logic.
func NewLogic[T any, E harness.DomainError](ctx context.Context, logic harness.Logic[T, E], opts ...Option) *Logic[T, E] {
	o := newOptions(opts)
	return &Logic[T, E]{
		ctx:    ctx,
		logic:  logic,
		tracer: o.tracer,
		log:    o.logger,
	}
}

// DoWork implements the harness.Logic interface.
func (l *Logic[T, E]) DoWork() (T, E) {
	spanCtx, span := l.tracer.Start(l.ctx, "Logic.DoWork")
	defer span.End()

	var noErr E
	v, err := l.logic.DoWork()
	if err != noErr {
		fail(spanCtx, span, l.log, "logic failed", err)
		return v, err
	}

	l.log.DebugContext(spanCtx, "logic completed", slog.Any("value", v))
	return v, noErr
}
