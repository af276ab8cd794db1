// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command stdio prompts for a line on stdin, echoes it back on stdout
// and prints the value produced by its logic.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/z5labs/harness"
	"github.com/z5labs/harness/app"
	"github.com/z5labs/harness/instrument"
	"github.com/z5labs/harness/lifecycle"
	"github.com/z5labs/harness/stdio"
)

// StdioEndpoint binds stdin and stdout to the default error type.
type StdioEndpoint = harness.Types[
	harness.Error,
	*instrument.Input[*stdio.Reader],
	*instrument.Output[*stdio.Writer],
]

var _ = harness.Bind[StdioEndpoint]

// WorkLogic always succeeds with the same value.
type WorkLogic struct{}

// DoWork implements the [harness.Logic] interface.
func (WorkLogic) DoWork() (uint8, *harness.LogicError) {
	return 123, nil
}

func runtime(stdin io.Reader, stdout io.Writer) app.RuntimeFunc {
	return func(ctx context.Context) error {
		log := instrument.Logger(app.LoggerFromContext(ctx))

		cc, err := harness.NewCmdCtxBuilder[StdioEndpoint]().
			WithInput(instrument.NewInput(ctx, stdio.NewReader(stdin), log)).
			WithOutput(instrument.NewOutput(ctx, stdio.NewWriter(stdout), log)).
			Build()
		if err != nil {
			return err
		}

		v, err := harness.Run(cc, instrument.NewLogic[uint8, *harness.LogicError](ctx, WorkLogic{}, log))
		if err != nil {
			return err
		}

		_, err = fmt.Fprintf(stdout, "Return value: %d.\n", v)
		return err
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	err := app.New(
		runtime(stdin, stdout),
		app.Name("stdio"),
		app.Stderr(stderr),
		app.Hooks(lifecycle.ManageOTel(stderr)),
	).Run(ctx, args...)
	if err != nil {
		app.Report(stderr, err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
