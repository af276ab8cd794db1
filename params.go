// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package harness

// Types describes which application error, input and output
// types are used together. It carries no data and is only ever
// used as a type argument, typically through a type alias:
//
//	type StdioEndpoint = harness.Types[harness.Error, *stdio.Reader, *stdio.Writer]
type Types[E, I, O any] struct {
	AppError [0]E
	Input    [0]I
	Output   [0]O
}

// TypeParamsT is satisfied by any [Types] instantiation, or any type
// defined on top of one. It allows generic code to accept a single
// type argument, P, and have E, I and O inferred from it.
type TypeParamsT[E, I, O any] interface {
	~struct {
		AppError [0]E
		Input    [0]I
		Output   [0]O
	}
}

// TypeParamsConstrained refines [TypeParamsT] by additionally requiring
// that E is an error, I is an [Input] and O is an [Output].
//
// Since it embeds TypeParamsT over the very same E, I and O, the slots
// of a P satisfying TypeParamsConstrained are, by construction, the slots
// of P as a TypeParamsT. Any P satisfying TypeParamsT whose slots meet
// the bounds automatically satisfies TypeParamsConstrained.
type TypeParamsConstrained[E error, I Input, O Output] interface {
	TypeParamsT[E, I, O]
}

// Bind fails to compile if P does not satisfy [TypeParamsConstrained].
// It has no runtime behaviour and is meant for package level assertions:
//
//	var _ = harness.Bind[StdioEndpoint]
func Bind[P TypeParamsConstrained[E, I, O], E error, I Input, O Output]() P {
	var p P
	return p
}
