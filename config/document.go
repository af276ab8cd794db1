// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/z5labs/harness/internal/try"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format names the syntax of a config document.
type Format string

const (
	FormatYaml Format = "yaml"
	FormatJson Format = "json"
	FormatToml Format = "toml"
)

// SyntaxError occurs when a config document is not valid for its [Format].
type SyntaxError struct {
	Format Format
	Cause  error
}

// Error implements the [builtin.error] interface.
func (e SyntaxError) Error() string {
	return fmt.Sprintf("malformed %s config: %s", e.Format, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e SyntaxError) Unwrap() error {
	return e.Cause
}

type parseFunc func(b []byte, m *map[string]any) error

// Document is a Source backed by a YAML, JSON or TOML document.
// The document is read, and closed if it is an [io.Closer], on Apply.
type Document struct {
	format Format
	r      io.Reader
	parse  parseFunc
}

// FromYaml returns a Document parsing r as YAML.
func FromYaml(r io.Reader) Document {
	return Document{
		format: FormatYaml,
		r:      r,
		parse: func(b []byte, m *map[string]any) error {
			return yaml.Unmarshal(b, m)
		},
	}
}

// FromJson returns a Document parsing r as JSON. An empty document
// applies nothing.
func FromJson(r io.Reader) Document {
	return Document{
		format: FormatJson,
		r:      r,
		parse: func(b []byte, m *map[string]any) error {
			if len(b) == 0 {
				return nil
			}
			return json.Unmarshal(b, m)
		},
	}
}

// FromToml returns a Document parsing r as TOML.
func FromToml(r io.Reader) Document {
	return Document{
		format: FormatToml,
		r:      r,
		parse: func(b []byte, m *map[string]any) error {
			return toml.Unmarshal(b, m)
		},
	}
}

// Format returns the syntax d is parsed with.
func (d Document) Format() Format {
	return d.format
}

// Apply implements the [Source] interface.
func (d Document) Apply(store Store) (err error) {
	if d.r == nil {
		return errors.New("config document has no reader")
	}
	defer try.Close(&err, d.r)

	b, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}

	m := make(map[string]any)
	err = d.parse(b, &m)
	if err != nil {
		return SyntaxError{Format: d.format, Cause: err}
	}
	return Map(m).Apply(store)
}
