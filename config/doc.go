// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package config loads the optional settings of a harness program, such as
// its logging and tracing, from YAML, JSON or TOML documents.
//
// Values from one or more [Source]s are merged into a [Manager], with later
// sources overriding earlier ones. Each package then decodes the section it
// owns into a struct using the "config" struct tag:
//
//	m, err := config.Read(
//	    config.FromYaml(strings.NewReader("logging:\n  level: debug")),
//	)
//	if err != nil {
//	    return err
//	}
//
//	var cfg struct {
//	    Logging struct {
//	        Level slog.Level `config:"level"`
//	    } `config:"logging"`
//	}
//	err = m.Unmarshal(&cfg)
//
// Any field type implementing [encoding.TextUnmarshaler] can be decoded from
// a string value, as can [time.Duration].
package config
