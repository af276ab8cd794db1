// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package harness

const (
	// Prompt is written to the Output before anything is read.
	Prompt = "Enter some input:\n"

	// EchoPrefix is written to the Output right before echoing
	// back the line read from the Input.
	EchoPrefix = "You entered: "
)

// Run executes a single interaction using the Input and Output owned
// by cc and the given Logic:
//
//  1. write [Prompt] to the Output
//  2. read one line from the Input
//  3. call logic.DoWork
//  4. write [EchoPrefix] followed by the line, verbatim, to the Output
//  5. return the value computed in step 3
//
// Run stops at the first failure. Output failures are converted into
// E as an [OutputFailure], Input failures as an [InputFailure] and Logic
// failures through E's FromLogic. Any non-nil error returned by Run is a
// value of type E. Text written before a failure is left as is.
//
// Run does not retain cc or logic and neither may be used concurrently
// while Run is executing.
func Run[
	P TypeParamsConstrained[E, I, O],
	E Unified[E, LE],
	I Input,
	O Output,
	T any,
	LE DomainError,
](cc *CmdCtx[P, E, I, O], logic Logic[T, LE]) (T, error) {
	var (
		zero    T
		unified E
		noErr   LE
	)

	err := cc.output.Write(Prompt)
	if err != nil {
		return zero, unified.FromError(OutputFailure(err))
	}

	line, err := cc.input.Read()
	if err != nil {
		return zero, unified.FromError(InputFailure(err))
	}

	t, lerr := logic.DoWork()
	if lerr != noErr {
		return zero, unified.FromLogic(lerr)
	}

	err = cc.output.Write(EchoPrefix)
	if err != nil {
		return zero, unified.FromError(OutputFailure(err))
	}
	err = cc.output.Write(line)
	if err != nil {
		return zero, unified.FromError(OutputFailure(err))
	}
	return t, nil
}
