// Copyright (c) 2024 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package config

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"
	"sync"
)

// FileReader is an io.Reader that handles opening a file for reading automatically.
type FileReader struct {
	path string

	openOnce sync.Once
	openErr  error
	fs       fs.FS
	file     io.ReadCloser
}

// NewFileReader configures a FileReader.
func NewFileReader(fs fs.FS, path string) *FileReader {
	return &FileReader{
		path: path,
		fs:   fs,
	}
}

// Read implements the io.Reader interface.
func (r *FileReader) Read(b []byte) (int, error) {
	r.openOnce.Do(func() {
		r.file, r.openErr = r.fs.Open(r.path)
	})
	if r.openErr != nil {
		return 0, r.openErr
	}
	return r.file.Read(b)
}

// Close implements the io.Closer interface.
func (r *FileReader) Close() error {
	if r.file == nil {
		return nil
	}

	err := r.file.Close()
	r.file = nil
	return err
}

// UnsupportedFormatError occurs when a config file extension
// does not map to a known format.
type UnsupportedFormatError struct {
	Path string
}

// Error implements the error interface.
func (e UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported config file format: %s", e.Path)
}

// FromFile returns a Source for the file at the given path within fsys.
// The format is picked from the file extension: .yaml, .yml, .json or .toml.
func FromFile(fsys fs.FS, name string) (Source, error) {
	r := NewFileReader(fsys, name)

	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return FromYaml(r), nil
	case ".json":
		return FromJson(r), nil
	case ".toml":
		return FromToml(r), nil
	default:
		return nil, UnsupportedFormatError{Path: name}
	}
}
