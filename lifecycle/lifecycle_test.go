// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package lifecycle

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/z5labs/harness/app"
	"github.com/z5labs/harness/config"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

func TestManageOTel(t *testing.T) {
	t.Run("will not export spans", func(t *testing.T) {
		t.Run("if otel is not enabled", func(t *testing.T) {
			var buf bytes.Buffer
			rt := app.RuntimeFunc(func(ctx context.Context) error {
				return nil
			})

			a := app.New(rt, app.Name("test"), app.Hooks(ManageOTel(&buf)))
			err := a.Run(context.Background())
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Empty(t, buf.String()) {
				return
			}
		})
	})

	t.Run("will export spans", func(t *testing.T) {
		t.Run("if otel is enabled", func(t *testing.T) {
			var buf bytes.Buffer
			rt := app.RuntimeFunc(func(ctx context.Context) error {
				return nil
			})

			cfg := config.FromYaml(strings.NewReader("otel:\n  enabled: true\n  serviceName: echo\n"))
			a := app.New(
				rt,
				app.Name("test"),
				app.Config(cfg),
				app.Hooks(ManageOTel(&buf)),
			)
			err := a.Run(context.Background())
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Contains(t, buf.String(), `"Name":"test"`) {
				return
			}
			if !assert.Contains(t, buf.String(), "echo") {
				return
			}
		})
	})

	t.Run("will uninstall its tracer provider", func(t *testing.T) {
		t.Run("if the run completes", func(t *testing.T) {
			cfg := "otel:\n  enabled: true\n"

			for i := 0; i < 2; i++ {
				var buf bytes.Buffer
				rt := app.RuntimeFunc(func(ctx context.Context) error {
					return nil
				})

				a := app.New(
					rt,
					app.Name("test"),
					app.Config(config.FromYaml(strings.NewReader(cfg))),
					app.Hooks(ManageOTel(&buf)),
				)
				err := a.Run(context.Background())
				if !assert.Nil(t, err) {
					return
				}
				if !assert.Contains(t, buf.String(), `"Name":"test"`) {
					return
				}

				_, installed := otel.GetTracerProvider().(*sdktrace.TracerProvider)
				if !assert.False(t, installed) {
					return
				}
			}
		})

		t.Run("if another tracer provider was installed before the run", func(t *testing.T) {
			prev := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(tracetest.NewSpanRecorder()))
			otel.SetTracerProvider(prev)
			defer otel.SetTracerProvider(tracenoop.NewTracerProvider())

			rt := app.RuntimeFunc(func(ctx context.Context) error {
				return nil
			})

			a := app.New(
				rt,
				app.Config(config.FromYaml(strings.NewReader("otel:\n  enabled: true\n"))),
				app.Hooks(ManageOTel(&bytes.Buffer{})),
			)
			err := a.Run(context.Background())
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Same(t, prev, otel.GetTracerProvider()) {
				return
			}
		})
	})

	t.Run("will return a PreRunError", func(t *testing.T) {
		t.Run("if the otel config can not be unmarshaled", func(t *testing.T) {
			rt := app.RuntimeFunc(func(ctx context.Context) error {
				return nil
			})

			cfg := config.FromYaml(strings.NewReader("otel:\n  enabled: maybe\n"))
			a := app.New(
				rt,
				app.Config(cfg),
				app.Hooks(ManageOTel(&bytes.Buffer{})),
			)
			err := a.Run(context.Background())

			var perr app.PreRunError
			if !assert.ErrorAs(t, err, &perr) {
				return
			}
		})
	})
}
