// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package harness wires an input source, an output sink and a unit of
// business logic together and runs a fixed interaction between them.
//
// The package is built around three capabilities:
//
//   - Input: produces a line of text
//   - Output: accepts text
//   - Logic[T, E]: computes a T or fails with a domain specific E
//
// # Type Parameters
//
// Instead of threading the application error, input and output types
// through every generic signature, they are described once with [Types]:
//
//	type StdioEndpoint = harness.Types[harness.Error, *stdio.Reader, *stdio.Writer]
//
// Generic code then only requires a single [TypeParamsConstrained] type
// argument and gets the remaining ones inferred, along with the guarantee
// that the error type is an error, the input type an Input and the output
// type an Output. A descriptor which does not meet those bounds is rejected
// by the compiler.
//
// # Basic Usage
//
//	cc := harness.NewCmdCtx[StdioEndpoint](stdio.Stdin(), stdio.Stdout())
//
//	v, err := harness.Run(cc, harness.LogicFunc[int, *harness.LogicError](func() (int, *harness.LogicError) {
//	    return 123, nil
//	}))
//
// # Error Handling
//
// Every failure is returned as the application error type of the descriptor,
// which must implement [Unified]. The provided [Error] type tags each failure
// with the participant it came from and keeps the original failure available
// through [errors.Unwrap].
package harness
