// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package lifecycle provides reusable hooks for an [app.App].
package lifecycle

import (
	"context"
	"io"

	"github.com/z5labs/harness/app"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// defaultTracerProvider is the global provider before anything is installed.
// It can only delegate once, so it is never reinstalled.
var defaultTracerProvider = otel.GetTracerProvider()

// OTelConfig is read from the "otel" section of the app config.
type OTelConfig struct {
	Enabled     bool   `config:"enabled"`
	ServiceName string `config:"serviceName"`
}

type otelConfig struct {
	OTel OTelConfig `config:"otel"`
}

// ManageOTel is a hook for initializing OTel on PreRun and shutting it down on PostRun.
//
// Tracing is only enabled when otel.enabled is set in the config, in which
// case spans are exported as JSON to w. After the run the previously
// installed global TracerProvider is restored, or a noop one if there
// was none.
func ManageOTel(w io.Writer) func(*app.Lifecycle) {
	return func(life *app.Lifecycle) {
		var (
			tp   *sdktrace.TracerProvider
			prev trace.TracerProvider
		)

		life.PreRun(func(ctx context.Context) error {
			var cfg otelConfig
			err := app.ConfigFromContext(ctx).Unmarshal(&cfg)
			if err != nil {
				return err
			}
			if !cfg.OTel.Enabled {
				return nil
			}

			exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
			if err != nil {
				return err
			}

			name := cfg.OTel.ServiceName
			if name == "" {
				name = "harness"
			}

			tp = sdktrace.NewTracerProvider(
				sdktrace.WithBatcher(exp),
				sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", name))),
			)
			prev = otel.GetTracerProvider()
			otel.SetTracerProvider(tp)
			otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
			return nil
		})

		life.PostRun(func(ctx context.Context) error {
			if tp == nil {
				return nil
			}
			if prev == defaultTracerProvider {
				prev = tracenoop.NewTracerProvider()
			}
			otel.SetTracerProvider(prev)

			err := tp.Shutdown(ctx)
			tp = nil
			return err
		})
	}
}
