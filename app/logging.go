// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package app

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/z5labs/harness/instrument"
	"github.com/z5labs/harness/pkg/maskslog"
	"github.com/z5labs/harness/pkg/noop"
	"github.com/z5labs/harness/pkg/otelslog"
)

// LoggingConfig configures the logs written by App.
type LoggingConfig struct {
	// Level is the minimum level logged.
	Level slog.Level `config:"level"`

	// Format is either "json" or "text". If empty, nothing is logged.
	Format string `config:"format"`

	// ShowInput disables masking of the text read from an Input,
	// see [instrument.LineAttrKey].
	ShowInput bool `config:"showInput"`
}

// UnknownLogFormatError occurs when [LoggingConfig.Format] is not supported.
type UnknownLogFormatError struct {
	Format string
}

// Error implements the [builtin.error] interface.
func (e UnknownLogFormatError) Error() string {
	return fmt.Sprintf("unknown log format: %s", e.Format)
}

func newLogHandler(w io.Writer, cfg LoggingConfig) (slog.Handler, error) {
	opts := &slog.HandlerOptions{
		Level: cfg.Level,
	}

	var h slog.Handler
	switch cfg.Format {
	case "":
		return noop.LogHandler{}, nil
	case "json":
		h = slog.NewJSONHandler(w, opts)
	case "text":
		h = slog.NewTextHandler(w, opts)
	default:
		return nil, UnknownLogFormatError{Format: cfg.Format}
	}

	if !cfg.ShowInput {
		h = maskslog.NewHandler(h, maskslog.Attr(instrument.LineAttrKey, maskslog.AnonymousStringAttr))
	}
	return otelslog.NewHandler(h), nil
}
