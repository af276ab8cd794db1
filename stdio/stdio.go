// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package stdio provides harness.Input and harness.Output implementations
// backed by the standard streams, or any io.Reader and io.Writer.
package stdio

import (
	"bufio"
	"errors"
	"io"
	"os"
)

const defaultBufferSize = 256

// Reader reads newline terminated lines from an underlying io.Reader.
type Reader struct {
	r *bufio.Reader
}

// NewReader returns a Reader which reads from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r: bufio.NewReaderSize(r, defaultBufferSize),
	}
}

// Stdin returns a Reader over [os.Stdin].
func Stdin() *Reader {
	return NewReader(os.Stdin)
}

// Read implements the harness.Input interface. The returned line keeps
// its trailing newline. If the underlying io.Reader is exhausted, whatever
// was read so far is returned without an error, so an empty line signals
// end of input.
func (r *Reader) Read() (string, error) {
	line, err := r.r.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return line, nil
}

// Writer writes text, unbuffered, to an underlying io.Writer.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer which writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Stdout returns a Writer over [os.Stdout].
func Stdout() *Writer {
	return NewWriter(os.Stdout)
}

// Write implements the harness.Output interface. Either all of s is
// written or an error is returned.
func (w *Writer) Write(s string) error {
	n, err := io.WriteString(w.w, s)
	if err != nil {
		return err
	}
	if n != len(s) {
		return io.ErrShortWrite
	}
	return nil
}
