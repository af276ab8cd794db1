// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package harness

import (
	"errors"
	"fmt"
)

// CmdCtx holds the [Input] and [Output] of a single run. The CmdCtx
// owns both of them for its entire lifetime, they must not be shared
// with anything else, including another CmdCtx.
//
// A CmdCtx is not safe for concurrent use.
type CmdCtx[P TypeParamsConstrained[E, I, O], E error, I Input, O Output] struct {
	input  I
	output O
}

// NewCmdCtx returns a CmdCtx which takes ownership of in and out.
// Only P needs to be provided, the remaining type arguments are inferred:
//
//	cc := harness.NewCmdCtx[StdioEndpoint](stdio.Stdin(), stdio.Stdout())
func NewCmdCtx[P TypeParamsConstrained[E, I, O], E error, I Input, O Output](in I, out O) *CmdCtx[P, E, I, O] {
	return &CmdCtx[P, E, I, O]{
		input:  in,
		output: out,
	}
}

// Input returns the Input owned by cc.
func (cc *CmdCtx[P, E, I, O]) Input() I {
	return cc.input
}

// Output returns the Output owned by cc.
func (cc *CmdCtx[P, E, I, O]) Output() O {
	return cc.output
}

// MissingInputError is returned by [CmdCtxBuilder.Build] if no
// Input was provided.
type MissingInputError struct {
	Type string
}

// Error implements the [builtin.error] interface.
func (e MissingInputError) Error() string {
	return fmt.Sprintf("no input provided for command context: %s", e.Type)
}

// MissingOutputError is returned by [CmdCtxBuilder.Build] if no
// Output was provided.
type MissingOutputError struct {
	Type string
}

// Error implements the [builtin.error] interface.
func (e MissingOutputError) Error() string {
	return fmt.Sprintf("no output provided for command context: %s", e.Type)
}

// ErrBuilderConsumed is returned by [CmdCtxBuilder.Build] when
// the builder has already built a CmdCtx.
var ErrBuilderConsumed = errors.New("command context builder already consumed")

// CmdCtxBuilder incrementally collects the Input and Output of a CmdCtx.
// Once built, the builder releases both values and can not be reused.
type CmdCtxBuilder[P TypeParamsConstrained[E, I, O], E error, I Input, O Output] struct {
	input     I
	output    O
	hasInput  bool
	hasOutput bool
	consumed  bool
}

// NewCmdCtxBuilder returns an empty CmdCtxBuilder for the types described by P.
func NewCmdCtxBuilder[P TypeParamsConstrained[E, I, O], E error, I Input, O Output]() *CmdCtxBuilder[P, E, I, O] {
	return &CmdCtxBuilder[P, E, I, O]{}
}

// WithInput sets the Input, replacing any previously set one.
func (b *CmdCtxBuilder[P, E, I, O]) WithInput(in I) *CmdCtxBuilder[P, E, I, O] {
	b.input = in
	b.hasInput = true
	return b
}

// WithOutput sets the Output, replacing any previously set one.
func (b *CmdCtxBuilder[P, E, I, O]) WithOutput(out O) *CmdCtxBuilder[P, E, I, O] {
	b.output = out
	b.hasOutput = true
	return b
}

// Build returns a CmdCtx which owns the collected Input and Output.
func (b *CmdCtxBuilder[P, E, I, O]) Build() (*CmdCtx[P, E, I, O], error) {
	if b.consumed {
		return nil, ErrBuilderConsumed
	}
	if !b.hasInput {
		return nil, MissingInputError{Type: fmt.Sprintf("%T", b.input)}
	}
	if !b.hasOutput {
		return nil, MissingOutputError{Type: fmt.Sprintf("%T", b.output)}
	}

	cc := NewCmdCtx[P, E, I, O](b.input, b.output)

	// the CmdCtx is now the sole owner
	var (
		zeroIn  I
		zeroOut O
	)
	b.input = zeroIn
	b.output = zeroOut
	b.hasInput = false
	b.hasOutput = false
	b.consumed = true

	return cc, nil
}
