// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type trackedReader struct {
	io.Reader
	closed bool
}

func (r *trackedReader) Close() error {
	r.closed = true
	return nil
}

type failReader struct{}

func (failReader) Read(b []byte) (int, error) {
	return 0, errors.New("disk gone")
}

func TestDocument_Apply(t *testing.T) {
	t.Run("will apply nothing", func(t *testing.T) {
		t.Run("if the json document is empty", func(t *testing.T) {
			m, err := Read(FromJson(strings.NewReader("")))
			if !assert.Nil(t, err) {
				return
			}
			if !assert.Empty(t, m.store) {
				return
			}
		})
	})

	t.Run("will close the reader", func(t *testing.T) {
		t.Run("if the reader is an io.Closer", func(t *testing.T) {
			r := &trackedReader{Reader: strings.NewReader("logging:\n  format: json\n")}

			_, err := Read(FromYaml(r))
			if !assert.Nil(t, err) {
				return
			}
			if !assert.True(t, r.closed) {
				return
			}
		})
	})

	t.Run("will return a SyntaxError", func(t *testing.T) {
		testCases := []struct {
			Name string
			Doc  Document
		}{
			{Name: "yaml", Doc: FromYaml(strings.NewReader("logging: [json"))},
			{Name: "json", Doc: FromJson(strings.NewReader(`{"logging": `))},
			{Name: "toml", Doc: FromToml(strings.NewReader("[logging\n"))},
		}

		for _, testCase := range testCases {
			t.Run("if the "+testCase.Name+" document is malformed", func(t *testing.T) {
				_, err := Read(testCase.Doc)

				var serr SyntaxError
				if !assert.ErrorAs(t, err, &serr) {
					return
				}
				if !assert.Equal(t, testCase.Doc.Format(), serr.Format) {
					return
				}
				if !assert.True(t, strings.HasPrefix(serr.Error(), "malformed "+testCase.Name+" config: ")) {
					return
				}
			})
		}
	})

	t.Run("will return the read error", func(t *testing.T) {
		t.Run("if the reader fails", func(t *testing.T) {
			_, err := Read(FromToml(failReader{}))
			if !assert.EqualError(t, err, "disk gone") {
				return
			}

			var serr SyntaxError
			if !assert.False(t, errors.As(err, &serr)) {
				return
			}
		})
	})
}
