// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failWriter struct{}

func (failWriter) Write(b []byte) (int, error) {
	return 0, errors.New("closed")
}

func TestRun(t *testing.T) {
	t.Run("will echo the line and print the return value", func(t *testing.T) {
		t.Run("if stdin has a line", func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), nil, strings.NewReader("hello\n"), &stdout, &stderr)
			if !assert.Equal(t, 0, code) {
				return
			}
			if !assert.Equal(t, "Enter some input:\nYou entered: hello\nReturn value: 123.\n", stdout.String()) {
				return
			}
			if !assert.Empty(t, stderr.String()) {
				return
			}
		})

		t.Run("if stdin is empty", func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), nil, strings.NewReader(""), &stdout, &stderr)
			if !assert.Equal(t, 0, code) {
				return
			}
			if !assert.Equal(t, "Enter some input:\nYou entered: Return value: 123.\n", stdout.String()) {
				return
			}
		})
	})

	t.Run("will report an output error", func(t *testing.T) {
		t.Run("if stdout can not be written to", func(t *testing.T) {
			var stderr bytes.Buffer
			code := run(context.Background(), nil, strings.NewReader("hello\n"), failWriter{}, &stderr)
			if !assert.Equal(t, 1, code) {
				return
			}
			if !assert.True(t, strings.HasPrefix(stderr.String(), "Error: Output error\n")) {
				return
			}
		})
	})

	t.Run("will report a config error", func(t *testing.T) {
		t.Run("if the log format is unknown", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			err := os.WriteFile(path, []byte("logging:\n  format: xml\n"), 0o600)
			if !assert.Nil(t, err) {
				return
			}

			var stdout, stderr bytes.Buffer
			code := run(context.Background(), []string{"--config", path}, strings.NewReader("hello\n"), &stdout, &stderr)
			if !assert.Equal(t, 1, code) {
				return
			}
			if !assert.Empty(t, stdout.String()) {
				return
			}
			if !assert.Contains(t, stderr.String(), "unknown log format: xml") {
				return
			}
		})
	})
}
