// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/z5labs/harness/config/key"

	"github.com/go-viper/mapstructure/v2"
)

// Store receives the values contributed by a [Source]. Nested keys
// arrive as a [key.Chain].
type Store interface {
	Set(key.Keyer, any) error
}

// Source contributes config values to a Store, e.g. the file
// passed with --config or the defaults registered by a program.
type Source interface {
	Apply(Store) error
}

// Manager holds the merged values of every Source read for a run.
// It is itself a Source, so a Manager can seed another Manager.
type Manager struct {
	store Map
}

// Read applies every Source, in order, to a fresh Manager. A value set by
// a later Source replaces the one set by an earlier Source, and the
// first failing Source stops the read.
func Read(srcs ...Source) (*Manager, error) {
	store := make(Map)
	for _, src := range srcs {
		err := src.Apply(store)
		if err != nil {
			return nil, err
		}
	}
	m := &Manager{
		store: store,
	}
	return m, nil
}

// Apply implements the Source interface.
func (m *Manager) Apply(store Store) error {
	return m.store.Apply(store)
}

// Unmarshal decodes the merged values into v, which must be a pointer to
// a struct whose fields carry the "config" tag. Keys without a matching
// field are ignored, so every package can decode just its own section.
func (m *Manager) Unmarshal(v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "config",
		Result:  v,
		DecodeHook: firstMatchingHook(
			textUnmarshalerHookFunc(),
			timeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]any(m.store))
}

// errHookSkipped is returned by a decode hook which does not apply to
// the given source and target types.
var errHookSkipped = errors.New("decode hook skipped")

// TypeCoercionError occurs when a config value can not be converted to
// the type of the field it is decoded into, e.g. "loud" as a slog.Level.
type TypeCoercionError struct {
	from  reflect.Value
	to    reflect.Value
	Cause error
}

// Error implements the error interface.
func (e TypeCoercionError) Error() string {
	return fmt.Sprintf("cannot decode config value of type %s into %s: %s", e.from.Type(), e.to.Type(), e.Cause)
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e TypeCoercionError) Unwrap() error {
	return e.Cause
}

// firstMatchingHook runs hs in order and uses the result of the first hook
// which does not skip. A value no hook applies to is passed through.
func firstMatchingHook(hs ...mapstructure.DecodeHookFunc) mapstructure.DecodeHookFuncValue {
	return func(f, t reflect.Value) (any, error) {
		for _, h := range hs {
			v, err := mapstructure.DecodeHookExec(h, f, t)
			if err == nil {
				return v, nil
			}
			if errors.Is(err, errHookSkipped) {
				continue
			}
			return nil, TypeCoercionError{
				from:  f,
				to:    t,
				Cause: err,
			}
		}
		return f.Interface(), nil
	}
}

func textUnmarshalerHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if f.Kind() != reflect.String {
			return nil, errHookSkipped
		}
		result := reflect.New(t).Interface()
		u, ok := result.(encoding.TextUnmarshaler)
		if !ok {
			return nil, errHookSkipped
		}
		err := u.UnmarshalText([]byte(reflect.ValueOf(data).String()))
		if err != nil {
			return nil, err
		}
		return result, nil
	}
}

func timeDurationHookFunc() mapstructure.DecodeHookFuncType {
	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != reflect.TypeOf(time.Duration(0)) {
			return nil, errHookSkipped
		}

		switch f.Kind() {
		case reflect.String:
			return time.ParseDuration(reflect.ValueOf(data).String())
		case reflect.Int, reflect.Int64:
			return time.Duration(reflect.ValueOf(data).Int()), nil
		default:
			return nil, errHookSkipped
		}
	}
}
