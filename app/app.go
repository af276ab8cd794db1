// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package app handles the lower level things of running a harness program:
// command line parsing, config loading, logging setup, lifecycle hooks and
// panic recovery.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/z5labs/harness/config"
	"github.com/z5labs/harness/internal/try"
	"github.com/z5labs/harness/pkg/noop"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const instrumentationName = "github.com/z5labs/harness/app"

// Runtime represents the entry point for user specific code.
type Runtime interface {
	Run(context.Context) error
}

// RuntimeFunc is a functional implementation of
// the Runtime interface.
type RuntimeFunc func(context.Context) error

// Run implements the Runtime interface.
func (f RuntimeFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// Lifecycle provides the ability to hook into certain points of
// the App.Run process.
type Lifecycle struct {
	preRunHooks  []func(context.Context) error
	postRunHooks []func(context.Context) error
}

// PreRun registers hooks to be called after the config is parsed and before Runtime.Run is called.
func (l *Lifecycle) PreRun(hooks ...func(context.Context) error) {
	l.preRunHooks = append(l.preRunHooks, hooks...)
}

// PostRun registers hooks to be called after Runtime.Run has completed, regardless
// whether it returned an error, panicked or a PreRun hook failed.
func (l *Lifecycle) PostRun(hooks ...func(context.Context) error) {
	l.postRunHooks = append(l.postRunHooks, hooks...)
}

type contextKey string

var (
	configContextKey = contextKey("configContextKey")
	loggerContextKey = contextKey("loggerContextKey")
	runIDContextKey  = contextKey("runIDContextKey")
)

// ConfigFromContext extracts the *config.Manager from the given context.Context.
// An empty Manager is returned if none is present.
func ConfigFromContext(ctx context.Context) *config.Manager {
	m, ok := ctx.Value(configContextKey).(*config.Manager)
	if ok {
		return m
	}
	m, _ = config.Read()
	return m
}

// LoggerFromContext extracts the *slog.Logger from the given context.Context.
// A logger which discards everything is returned if none is present.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerContextKey).(*slog.Logger)
	if ok {
		return logger
	}
	return noop.Logger()
}

// RunIDFromContext extracts the unique id of the current run.
func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runIDContextKey).(string)
	return id
}

// Option are used to configure an App.
type Option func(*App)

// Name configures the name of the application.
func Name(name string) Option {
	return func(a *App) {
		a.name = name
	}
}

// Config registers a base config source with the application. Sources are
// applied in the order they are registered and a file passed with the
// --config flag is always applied last.
func Config(src config.Source) Option {
	return func(a *App) {
		a.cfgSrcs = append(a.cfgSrcs, src)
	}
}

// Hooks allows you to register multiple lifecycle hooks.
func Hooks(fs ...func(*Lifecycle)) Option {
	return func(a *App) {
		for _, f := range fs {
			f(&a.life)
		}
	}
}

// Stderr sets where logs are written. Defaults to [os.Stderr].
func Stderr(w io.Writer) Option {
	return func(a *App) {
		a.stderr = w
	}
}

// App runs a single Runtime. App is responsible for the following:
//   - Parsing the command line
//   - Reading (and merging) your config(s)
//   - Setting up structured logging
//   - Calling your lifecycle hooks at the appropriate times
//   - Recovering from panics in your Runtime
type App struct {
	name    string
	cfgSrcs []config.Source
	life    Lifecycle
	rt      Runtime
	stderr  io.Writer
}

// New returns a fully initialized App.
func New(rt Runtime, opts ...Option) *App {
	var name string
	if len(os.Args) > 0 {
		name = filepath.Base(os.Args[0])
	}
	app := &App{
		name:   name,
		rt:     rt,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Run parses args and executes the Runtime.
//
// Errors returned by the Runtime are returned as is, while failures of
// the App itself are wrapped in one of [ConfigReadError],
// [ConfigUnmarshalError], [LoggingError], [PreRunError] or [PostRunError].
func (app *App) Run(ctx context.Context, args ...string) error {
	cmd := buildCmd(app)
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

// appConfig is the configuration understood by App itself.
type appConfig struct {
	Logging LoggingConfig `config:"logging"`
}

func buildCmd(app *App) *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           app.name,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.execute(cmd.Context(), cfgPath)
		},
	}
	cmd.SetErr(app.stderr)
	cmd.Flags().StringVar(&cfgPath, "config", "", "path to a yaml, json or toml config file")
	return cmd
}

func (app *App) execute(ctx context.Context, cfgPath string) (err error) {
	srcs := app.cfgSrcs
	if cfgPath != "" {
		src, err := config.FromFile(os.DirFS(filepath.Dir(cfgPath)), filepath.Base(cfgPath))
		if err != nil {
			return ConfigReadError{Cause: err}
		}
		srcs = append(srcs[:len(srcs):len(srcs)], src)
	}

	m, err := config.Read(srcs...)
	if err != nil {
		return ConfigReadError{Cause: err}
	}

	var cfg appConfig
	err = m.Unmarshal(&cfg)
	if err != nil {
		return ConfigUnmarshalError{Cause: err}
	}

	h, err := newLogHandler(app.stderr, cfg.Logging)
	if err != nil {
		return LoggingError{Cause: err}
	}

	runID := uuid.NewString()
	logger := slog.New(h).With(slog.String("run_id", runID))

	ctx = context.WithValue(ctx, configContextKey, m)
	ctx = context.WithValue(ctx, loggerContextKey, logger)
	ctx = context.WithValue(ctx, runIDContextKey, runID)

	defer runPostRunHooks(ctx, app.life.postRunHooks, &err)

	err = runPreRunHooks(ctx, app.life.preRunHooks)
	if err != nil {
		return err
	}

	return app.run(ctx, logger, runID)
}

func (app *App) run(ctx context.Context, logger *slog.Logger, runID string) (err error) {
	spanCtx, span := otel.Tracer(instrumentationName).Start(ctx, app.name)
	defer span.End()

	span.SetAttributes(attribute.String("harness.run_id", runID))

	defer func() {
		if err == nil {
			logger.InfoContext(spanCtx, "run completed")
			return
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorContext(spanCtx, "run failed", slog.Any("error", err))
	}()

	logger.InfoContext(spanCtx, "starting run")
	return Recover(app.rt).Run(spanCtx)
}

func runPreRunHooks(ctx context.Context, hooks []func(context.Context) error) error {
	var errs []error
	for _, f := range hooks {
		err := f(ctx)
		if err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return PreRunError{Cause: errors.Join(errs...)}
}

func runPostRunHooks(ctx context.Context, hooks []func(context.Context) error, err *error) {
	var errs []error
	for _, f := range hooks {
		herr := f(ctx)
		if herr != nil {
			errs = append(errs, herr)
		}
	}
	if len(errs) == 0 {
		return
	}

	// errors.Join drops *err if it's nil
	*err = errors.Join(*err, PostRunError{Cause: errors.Join(errs...)})
}

// Recover will wrap the given Runtime with panic recovery.
// A recovered panic is returned as a [try.PanicError].
func Recover(rt Runtime) Runtime {
	return RuntimeFunc(func(ctx context.Context) (err error) {
		defer try.Recover(&err)

		return rt.Run(ctx)
	})
}

// Report writes a human readable diagnostic for err to w: the top-level
// error message followed by its chain of causes.
func Report(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %s\n", err)

	cause := errors.Unwrap(err)
	if cause == nil {
		return
	}

	fmt.Fprint(w, "\nCaused by:\n")
	for ; cause != nil; cause = errors.Unwrap(cause) {
		fmt.Fprintf(w, "    %s\n", cause)
	}
}

// ConfigReadError
type ConfigReadError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ConfigReadError) Error() string {
	return fmt.Sprintf("failed to read config source(s): %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ConfigReadError) Unwrap() error {
	return e.Cause
}

// ConfigUnmarshalError
type ConfigUnmarshalError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e ConfigUnmarshalError) Error() string {
	return fmt.Sprintf("failed to unmarshal config: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e ConfigUnmarshalError) Unwrap() error {
	return e.Cause
}

// LoggingError
type LoggingError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e LoggingError) Error() string {
	return fmt.Sprintf("failed to initialize logging: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e LoggingError) Unwrap() error {
	return e.Cause
}

// PreRunError
type PreRunError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e PreRunError) Error() string {
	return fmt.Sprintf("pre run hook failed: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e PreRunError) Unwrap() error {
	return e.Cause
}

// PostRunError
type PostRunError struct {
	Cause error
}

// Error implements the [builtin.error] interface.
func (e PostRunError) Error() string {
	return fmt.Sprintf("post run hook failed: %s", e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e PostRunError) Unwrap() error {
	return e.Cause
}
