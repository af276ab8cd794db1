// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package harness

// Input represents anything which can produce a line of text.
type Input interface {
	Read() (string, error)
}

// InputFunc is a functional implementation of
// the Input interface.
type InputFunc func() (string, error)

// Read implements the Input interface.
func (f InputFunc) Read() (string, error) {
	return f()
}

// Output represents anything which can accept text. Implementations
// must emit the given text as is, without appending a newline.
type Output interface {
	Write(string) error
}

// OutputFunc is a functional implementation of
// the Output interface.
type OutputFunc func(string) error

// Write implements the Output interface.
func (f OutputFunc) Write(s string) error {
	return f(s)
}

// DomainError is the set of error types a Logic may fail with. The zero
// value of a DomainError is interpreted as the absence of a failure, which
// is why it must be comparable.
type DomainError interface {
	comparable
	error
}

// Logic represents a single unit of business logic.
type Logic[T any, E DomainError] interface {
	DoWork() (T, E)
}

// LogicFunc is a functional implementation of
// the Logic interface.
type LogicFunc[T any, E DomainError] func() (T, E)

// DoWork implements the Logic interface.
func (f LogicFunc[T, E]) DoWork() (T, E) {
	return f()
}
