// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package harness_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/z5labs/harness"
	"github.com/z5labs/harness/stdio"
)

type Endpoint = harness.Types[harness.Error, *stdio.Reader, *stdio.Writer]

func Example() {
	cc := harness.NewCmdCtx[Endpoint](
		stdio.NewReader(strings.NewReader("hello\n")),
		stdio.NewWriter(os.Stdout),
	)

	logic := harness.LogicFunc[uint8, *harness.LogicError](func() (uint8, *harness.LogicError) {
		return 123, nil
	})

	v, err := harness.Run(cc, logic)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("Return value: %d.\n", v)

	// Output:
	// Enter some input:
	// You entered: hello
	// Return value: 123.
}

func ExampleRun_logicError() {
	cc := harness.NewCmdCtx[Endpoint](
		stdio.NewReader(strings.NewReader("hello\n")),
		stdio.NewWriter(os.Stdout),
	)

	logic := harness.LogicFunc[uint8, *harness.LogicError](func() (uint8, *harness.LogicError) {
		return 0, harness.NewLogicError("nothing to do")
	})

	_, err := harness.Run(cc, logic)
	fmt.Println(err)
	fmt.Println(harness.IsKind(err, harness.KindLogic))

	// Output:
	// Enter some input:
	// Logic error
	// true
}

func ExampleCmdCtxBuilder() {
	b := harness.NewCmdCtxBuilder[Endpoint]()
	b.WithOutput(stdio.NewWriter(os.Stdout))
	b.WithInput(stdio.NewReader(strings.NewReader("built\n")))

	cc, err := b.Build()
	if err != nil {
		fmt.Println(err)
		return
	}

	_, err = harness.Run(cc, harness.LogicFunc[int, *harness.LogicError](func() (int, *harness.LogicError) {
		return 0, nil
	}))
	if err != nil {
		fmt.Println(err)
	}

	// Output:
	// Enter some input:
	// You entered: built
}
