// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package harness

import "errors"

// LogicError is the failure reported by business logic.
type LogicError struct {
	msg string
}

// NewLogicError returns a LogicError with the given message.
func NewLogicError(msg string) *LogicError {
	return &LogicError{msg: msg}
}

// Error implements the [builtin.error] interface.
func (e *LogicError) Error() string {
	return e.msg
}

// Kind identifies which participant of a run produced an [Error].
type Kind uint8

const (
	KindLogic Kind = iota + 1
	KindInput
	KindOutput
)

// String returns the category text of the Kind.
func (k Kind) String() string {
	switch k {
	case KindLogic:
		return "Logic error"
	case KindInput:
		return "Input error"
	case KindOutput:
		return "Output error"
	default:
		return "Unknown error"
	}
}

// Error is the unified failure of a run. It is exactly one of a logic,
// input or output failure and always carries the failure it wraps, which
// can be retrieved with [errors.Unwrap].
//
// Error can only be constructed with [LogicFailure], [InputFailure]
// and [OutputFailure]. The zero value is not a valid Error: it has no
// Kind, reports "Unknown error" and wraps nothing. [Run] never returns it.
type Error struct {
	kind  Kind
	cause error
}

// LogicFailure wraps a LogicError.
func LogicFailure(err *LogicError) Error {
	return Error{kind: KindLogic, cause: err}
}

// InputFailure wraps an error returned while reading from an [Input].
func InputFailure(err error) Error {
	return Error{kind: KindInput, cause: err}
}

// OutputFailure wraps an error returned while writing to an [Output].
func OutputFailure(err error) Error {
	return Error{kind: KindOutput, cause: err}
}

// Kind returns which participant failed.
func (e Error) Kind() Kind {
	return e.kind
}

// Error implements the [builtin.error] interface. Only the category
// text is returned, use [errors.Unwrap] for the underlying failure.
func (e Error) Error() string {
	return e.kind.String()
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e Error) Unwrap() error {
	return e.cause
}

// FromLogic implements the [Unified] interface.
func (Error) FromLogic(err *LogicError) Error {
	return LogicFailure(err)
}

// FromError implements the [Unified] interface.
func (Error) FromError(err Error) Error {
	return err
}

var _ Unified[Error, *LogicError] = Error{}

// IsKind reports whether err's chain contains an [Error] of the given [Kind].
func IsKind(err error, kind Kind) bool {
	var herr Error
	if !errors.As(err, &herr) {
		return false
	}
	return herr.kind == kind
}

// Unified describes an application error type, E, which can absorb both
// the failures of a [Logic], LE, and the failures the harness itself
// produces while talking to an [Input] or [Output].
//
// The methods are called on the zero value of E, so they must not
// depend on the receiver.
type Unified[E any, LE error] interface {
	error

	FromLogic(LE) E
	FromError(Error) E
}
